// Package segment splits document text into passages and sentences.
//
// Passages are the non-blank lines of a document, read as plain text even when
// they came out of HTML extraction as Markdown; sentences are found inside each
// passage with prose's punkt-based boundary detection, which knows common English
// abbreviations ("Dr.", "e.g.") and does not break on them.
package segment

import (
	"log/slog"
	"strings"

	"github.com/jdkato/prose/v2"
)

// Passages returns the trimmed, non-blank lines of text in order, with Markdown
// decoration stripped (see StripMarkup).
func Passages(text string) []string {
	lines := strings.Split(text, "\n")
	passages := make([]string, 0, len(lines))
	for _, line := range lines {
		if passage := StripMarkup(strings.TrimSpace(line)); passage != "" {
			passages = append(passages, passage)
		}
	}
	return passages
}

// Sentences returns the sentences of a single passage in order.
// Blank input yields an empty slice.
func Sentences(passage string) []string {
	if strings.TrimSpace(passage) == "" {
		return []string{}
	}

	doc, err := prose.NewDocument(passage,
		prose.WithTokenization(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		slog.Debug("Sentence segmentation failed, keeping passage whole", "error", err)
		return []string{strings.TrimSpace(passage)}
	}

	var sentences []string
	for _, sent := range doc.Sentences() {
		if text := strings.TrimSpace(sent.Text); text != "" {
			sentences = append(sentences, text)
		}
	}
	return sentences
}

// Split returns every sentence of text, passage by passage.
func Split(text string) []string {
	var sentences []string
	for _, passage := range Passages(text) {
		sentences = append(sentences, Sentences(passage)...)
	}
	slog.Debug("Text segmented", "textLength", len(text), "sentences", len(sentences))
	return sentences
}
