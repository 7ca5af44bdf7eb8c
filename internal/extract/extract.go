// Package extract turns HTML documents into plain prose for the corpus.
//
// Pages are reduced to their main article with go-readability (or to the elements
// matching a CSS selector) and converted with html-to-markdown. Links keep only their
// text and images are dropped, so URLs never reach the tokenizer; every block element
// ends up on its own line, which the segmenter treats as a passage.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// ToText extracts readable text from HTML.
//
// Parameters:
//   - content: HTML input
//   - selector: optional CSS selector; when set only matching elements are kept
//   - baseURL: page URL used by readability to resolve relative links (may be nil)
//
// When readability finds no article the whole body is converted instead.
func ToText(content io.Reader, selector string, baseURL *url.URL) (string, error) {
	html, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("failed to read HTML content: %w", err)
	}

	if selector != "" {
		return extractWithSelector(html, selector)
	}

	text, err := extractArticle(html, baseURL)
	if err == nil && strings.TrimSpace(text) != "" {
		return text, nil
	}
	slog.Debug("Readability found no article, converting whole page", "error", err)
	return convertToText(string(html))
}

// extractArticle uses go-readability to keep the main article only.
func extractArticle(html []byte, baseURL *url.URL) (string, error) {
	if baseURL == nil {
		baseURL = &url.URL{}
	}

	article, err := readability.FromReader(bytes.NewReader(html), baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract main content: %w", err)
	}
	return convertToText(article.Content)
}

// extractWithSelector keeps the elements matching a CSS selector.
func extractWithSelector(html []byte, selector string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	selection := doc.Find(selector)
	if selection.Length() == 0 {
		return "", fmt.Errorf("no elements found matching selector: %s", selector)
	}

	var parts []string
	selection.Each(func(_ int, s *goquery.Selection) {
		if outer, err := goquery.OuterHtml(s); err == nil {
			parts = append(parts, outer)
		}
	})

	return convertToText(strings.Join(parts, "\n"))
}

// convertToText converts an HTML fragment to Markdown-flavoured plain text.
func convertToText(html string) (string, error) {
	converter := md.NewConverter("", true, nil)
	converter.AddRules(
		md.Rule{
			Filter: []string{"a"},
			Replacement: func(content string, _ *goquery.Selection, _ *md.Options) *string {
				text := strings.TrimSpace(content)
				return &text
			},
		},
		md.Rule{
			Filter: []string{"img", "script", "style"},
			Replacement: func(string, *goquery.Selection, *md.Options) *string {
				empty := ""
				return &empty
			},
		},
	)

	text, err := converter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to text: %w", err)
	}

	return tidy(text), nil
}

// tidy trims every line and collapses runs of blank lines.
func tidy(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
