// Article extraction: readability over fetched HTML, then a plain-text
// rendering of the article body for content derivation.
package main

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"

	readability "codeberg.org/readeck/go-readability"
	"github.com/JohannesKaufmann/dom"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"golang.org/x/net/html"
)

// articleMeta is the metadata readability recovered alongside the body.
type articleMeta struct {
	Title    string
	Byline   string
	SiteName string
}

// extractArticle runs readability on raw HTML and returns the article
// body HTML plus metadata. No extractable content is an error: there is
// nothing to summarize or compose from.
func extractArticle(htmlBytes []byte, pageURL *url.URL) (string, articleMeta, error) {
	article, err := readability.FromReader(bytes.NewReader(htmlBytes), pageURL)
	if err != nil {
		return "", articleMeta{}, fmt.Errorf("readability extraction failed: %w", err)
	}
	if article.Content == "" {
		return "", articleMeta{}, fmt.Errorf("readability extracted no content from %s", pageURL)
	}

	meta := articleMeta{
		Title:    article.Title,
		Byline:   article.Byline,
		SiteName: article.SiteName,
	}
	return article.Content, meta, nil
}

var (
	textConverter     *converter.Converter
	textConverterOnce sync.Once
)

// getTextConverter returns a shared HTML-to-markdown converter with
// images dropped: only the article prose matters for summarization.
func getTextConverter() *converter.Converter {
	textConverterOnce.Do(func() {
		textConverter = converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		)
		textConverter.Register.RendererFor("img", converter.TagTypeInline,
			func(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
				if alt := strings.TrimSpace(dom.GetAttributeOr(n, "alt", "")); alt != "" {
					w.WriteString(alt)
				}
				return converter.RenderSuccess
			},
			converter.PriorityEarly,
		)
	})
	return textConverter
}

var (
	mdLinkRe    = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	mdMarkupRe  = regexp.MustCompile("[*_`#]+")
	mdHeadingRe = regexp.MustCompile(`(?m)^>+\s*`)
)

// articleText converts article body HTML to plain prose for the content
// derivation step.
func articleText(contentHTML string) (string, error) {
	md, err := getTextConverter().ConvertString(contentHTML)
	if err != nil {
		return "", fmt.Errorf("converting article to text: %w", err)
	}

	text := mdLinkRe.ReplaceAllString(md, "$1")
	text = mdMarkupRe.ReplaceAllString(text, "")
	text = mdHeadingRe.ReplaceAllString(text, "")

	// Collapse whitespace runs so word counting is stable.
	return strings.Join(strings.Fields(text), " "), nil
}
