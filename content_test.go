package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

const sampleArticle = `Le marché boursier connaît une forte croissance cette année.
L'inflation ralentit et les entreprises investissent massivement dans la banque
et la bourse. Les analystes du marché prévoient une croissance durable de
l'économie malgré les incertitudes du marché mondial.`

func TestHeuristicContent_Budgets(t *testing.T) {
	cfg := &ContentConfig{BulletWords: 5, DescriptionWords: 10, HashtagCount: 3}
	c := heuristicContent(sampleArticle, cfg)

	if n := len(strings.Fields(c.Bullet)); n > 5 {
		t.Errorf("bullet has %d words, budget is 5", n)
	}
	if n := len(strings.Fields(c.Description)); n > 10 {
		t.Errorf("description has %d words, budget is 10", n)
	}
	if len(c.Hashtags) > 3 {
		t.Errorf("got %d hashtags, budget is 3", len(c.Hashtags))
	}
	for _, tag := range c.Hashtags {
		if !strings.HasPrefix(tag, "#") {
			t.Errorf("hashtag %q missing #", tag)
		}
		if tag != strings.ToLower(tag) {
			t.Errorf("hashtag %q should be lowercase", tag)
		}
	}
}

func TestHeuristicContent_Deterministic(t *testing.T) {
	cfg := &ContentConfig{BulletWords: 12, DescriptionWords: 40, HashtagCount: 8}
	a := heuristicContent(sampleArticle, cfg)
	b := heuristicContent(sampleArticle, cfg)
	if !reflect.DeepEqual(a, b) {
		t.Error("heuristic content should be deterministic")
	}
}

func TestGuessCategory(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{sampleArticle, "economie"},
		{"le match de football du championnat oppose deux équipes", "sports"},
		{"une startup développe un logiciel d'intelligence artificielle", "hi-tech"},
		{"rien de particulier ici", "monde"},
	}
	for _, tt := range tests {
		if got := guessCategory(tt.text); got != tt.want {
			t.Errorf("guessCategory(%.30q...) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestFirstSentence(t *testing.T) {
	tests := []struct{ in, want string }{
		{"One. Two.", "One"},
		{"What now? Then.", "What now"},
		{"no terminator", "no terminator"},
		{"  padded. x", "padded"},
	}
	for _, tt := range tests {
		if got := firstSentence(tt.in); got != tt.want {
			t.Errorf("firstSentence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncateWords(t *testing.T) {
	if got := truncateWords("a b c d", 2); got != "a b" {
		t.Errorf("truncateWords = %q, want %q", got, "a b")
	}
	if got := truncateWords("a b", 5); got != "a b" {
		t.Errorf("truncateWords should keep short input, got %q", got)
	}
}

func TestTopKeywords_RankedByFrequency(t *testing.T) {
	text := "marché marché marché croissance croissance inflation"
	kws := topKeywords(text, 2)
	want := []string{"marché", "croissance"}
	if !reflect.DeepEqual(kws, want) {
		t.Errorf("topKeywords = %v, want %v", kws, want)
	}
}

func TestTopKeywords_TiesKeepFirstAppearance(t *testing.T) {
	text := "zebra apple zebra apple mango"
	want := []string{"zebra", "apple", "mango"}
	if got := topKeywords(text, 3); !reflect.DeepEqual(got, want) {
		t.Errorf("topKeywords = %v, want %v", got, want)
	}
}

func TestBuildCaption(t *testing.T) {
	c := postContent{Description: "desc", Hashtags: []string{"#a", "#b"}}
	if got := buildCaption(c); got != "desc\n\n#a #b" {
		t.Errorf("buildCaption = %q", got)
	}
	if got := buildCaption(postContent{Description: "only"}); got != "only" {
		t.Errorf("caption without hashtags = %q", got)
	}
}

func TestChatComplete_ParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("auth header = %q", got)
		}
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"Une réponse"}}]}`)
	}))
	defer srv.Close()

	cfg := &ContentConfig{APIBaseURL: srv.URL, Model: "test-model"}
	got, err := chatComplete(cfg, "test-key", "prompt")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Une réponse" {
		t.Errorf("chatComplete = %q", got)
	}
}

func TestChatComplete_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	cfg := &ContentConfig{APIBaseURL: srv.URL, Model: "test-model"}
	if _, err := chatComplete(cfg, "k", "p"); err == nil {
		t.Error("expected error for empty choices")
	}
}
