// Content derivation: the short headline ("bullet point"), caption
// description, hashtags and category for a post. Uses an
// OpenAI-compatible chat API when a key is configured, with a
// deterministic local heuristic as the offline fallback.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
)

// postContent is everything derived from the article text.
type postContent struct {
	Bullet      string
	Description string
	Hashtags    []string
	Category    string
}

// contentStopwords are skipped when ranking keywords for hashtags and
// the category guess. English and French, matching the languages the
// tool is mostly used with.
var contentStopwords = map[string]bool{
	"with": true, "this": true, "that": true, "from": true, "your": true,
	"have": true, "there": true, "their": true, "would": true, "which": true,
	"about": true, "after": true, "dans": true, "pour": true, "avec": true,
	"leur": true, "cette": true, "sont": true, "plus": true, "elles": true,
}

// categoryHints maps category keys to trigger words; the category with
// the most hits wins, "monde" when nothing matches.
var categoryHints = map[string][]string{
	"hi-tech":  {"tech", "technologie", "intelligence", "logiciel", "software", "startup", "numérique", "internet", "digital", "data"},
	"sports":   {"sport", "match", "football", "championnat", "tournoi", "joueur", "équipe", "league"},
	"economie": {"économie", "economy", "marché", "market", "bourse", "inflation", "croissance", "entreprise", "banque"},
	"Sante":    {"santé", "health", "médecin", "virus", "hôpital", "maladie", "vaccin", "patient"},
	"culture":  {"culture", "festival", "musique", "cinéma", "film", "artiste", "exposition"},
	"Societe":  {"société", "society", "social", "éducation", "justice", "police"},
	"nation":   {"gouvernement", "parlement", "ministre", "élection", "loi"},
}

// apiKey returns the configured API key, if any.
func apiKey() string {
	if k := os.Getenv("ARTIGRAM_API_KEY"); k != "" {
		return k
	}
	return os.Getenv("OPENAI_API_KEY")
}

// deriveContent produces the post content from article text. With an API
// key it asks the configured model; API failures degrade to the local
// heuristic with a warning rather than aborting the run.
func deriveContent(text string, cfg *ContentConfig, locale string) postContent {
	if key := apiKey(); key != "" {
		content, err := apiContent(text, cfg, locale, key)
		if err == nil {
			return content
		}
		fmt.Fprintf(logOut, "Warning: content API failed, using local heuristic: %v\n", err)
	}
	return heuristicContent(text, cfg)
}

// heuristicContent derives content locally: first sentence as the
// bullet, leading words as the description, frequency-ranked keywords as
// hashtags. Pure function of (text, budgets).
func heuristicContent(text string, cfg *ContentConfig) postContent {
	bullet := truncateWords(firstSentence(text), cfg.BulletWords)
	description := truncateWords(text, cfg.DescriptionWords)

	var hashtags []string
	for _, kw := range topKeywords(text, cfg.HashtagCount) {
		hashtags = append(hashtags, "#"+strings.ToLower(kw))
	}

	return postContent{
		Bullet:      bullet,
		Description: description,
		Hashtags:    hashtags,
		Category:    guessCategory(text),
	}
}

// firstSentence returns text up to the first sentence terminator.
func firstSentence(text string) string {
	text = strings.TrimSpace(text)
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			return text[:i]
		}
	}
	return text
}

// truncateWords limits s to at most n words.
func truncateWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ")
}

// topKeywords ranks words longer than four characters by frequency.
// order starts in first-appearance order and the stable sort keeps it
// for ties, so the result is deterministic.
func topKeywords(text string, max int) []string {
	counts := map[string]int{}
	var order []string

	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?;:()[]{}«»\"'")
		if len(word) <= 4 || contentStopwords[word] {
			continue
		}
		if _, ok := counts[word]; !ok {
			order = append(order, word)
		}
		counts[word]++
	}

	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})

	if len(order) > max {
		order = order[:max]
	}
	return order
}

// guessCategory counts category hint words in the text.
func guessCategory(text string) string {
	lower := strings.ToLower(text)
	best, bestHits := "monde", 0
	// Iterate the fixed key list, not the map, for deterministic ties.
	for _, key := range allowedCategories {
		hits := 0
		for _, hint := range categoryHints[key] {
			hits += strings.Count(lower, hint)
		}
		if hits > bestHits {
			best, bestHits = key, hits
		}
	}
	return best
}

// buildCaption assembles the ready-to-paste caption: description plus a
// hashtag block. The headline is not repeated, it lives on the image.
func buildCaption(c postContent) string {
	if len(c.Hashtags) == 0 {
		return c.Description
	}
	return c.Description + "\n\n" + strings.Join(c.Hashtags, " ")
}

// ---- OpenAI-compatible API path ----

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// apiContent derives all four fields through the chat API, one prompt
// per field the way the original prompt set was structured.
func apiContent(text string, cfg *ContentConfig, locale, key string) (postContent, error) {
	// Keep request sizes sane for long articles.
	excerpt := truncateWords(text, 800)

	bullet, err := chatComplete(cfg, key, fmt.Sprintf(
		"Summarize this article as a single punchy headline of at most %d words, in the language with ISO code %q. Reply with the headline only.\n\n%s",
		cfg.BulletWords, locale, excerpt))
	if err != nil {
		return postContent{}, err
	}

	description, err := chatComplete(cfg, key, fmt.Sprintf(
		"Write an engaging social media description of this article in about %d words, in the language with ISO code %q. Reply with the description only.\n\n%s",
		cfg.DescriptionWords, locale, excerpt))
	if err != nil {
		return postContent{}, err
	}

	tagLine, err := chatComplete(cfg, key, fmt.Sprintf(
		"Give %d relevant hashtags for this article, in the language with ISO code %q, space separated, each starting with #. Reply with the hashtags only.\n\n%s",
		cfg.HashtagCount, locale, excerpt))
	if err != nil {
		return postContent{}, err
	}
	var hashtags []string
	for _, tag := range strings.Fields(tagLine) {
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		hashtags = append(hashtags, tag)
		if len(hashtags) == cfg.HashtagCount {
			break
		}
	}

	category, err := chatComplete(cfg, key, fmt.Sprintf(
		"Classify this article into exactly one of these category keys: %s. Reply with the key only.\n\n%s",
		strings.Join(allowedCategories, ", "), excerpt))
	if err != nil {
		return postContent{}, err
	}
	category = strings.TrimSpace(category)
	if !isAllowedCategory(category) {
		fmt.Fprintf(logOut, "Warning: model returned unknown category %q, guessing locally\n", category)
		category = guessCategory(text)
	}

	return postContent{
		Bullet:      strings.Trim(strings.TrimSpace(bullet), `"`),
		Description: strings.TrimSpace(description),
		Hashtags:    hashtags,
		Category:    category,
	}, nil
}

// chatComplete performs one chat-completions call with retries.
func chatComplete(cfg *ContentConfig, key, prompt string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:    cfg.Model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}

	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.Logger = nil

	req, err := retryablehttp.NewRequest("POST",
		strings.TrimSuffix(cfg.APIBaseURL, "/")+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("content API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("content API returned HTTP %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding content API response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("content API returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
