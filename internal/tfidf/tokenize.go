package tfidf

import (
	"log/slog"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
)

// Tokenize breaks text into normalized content tokens, in order.
// It converts to lowercase, splits words with prose's iterative tokenizer, and
// drops punctuation-only tokens and English stopwords.
//
// Parameters:
//   - text: input text to tokenize
//
// Returns:
//   - []string: content tokens (never nil; duplicates preserved)
//
// The same function must be used for documents, sentences and queries since
// query words are matched against document words by exact equality.
func Tokenize(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	// convert to lowercase for case-insensitive matching
	text = strings.ToLower(text)

	filtered := make([]string, 0)
	for _, word := range splitWords(text) {
		if isPunctuation(word) || IsStopword(word) {
			continue
		}
		filtered = append(filtered, word)
	}

	return filtered
}

// splitWords runs prose's word tokenizer without segmentation, tagging or
// entity extraction, which keeps it free of model loading.
func splitWords(text string) []string {
	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		// prose only reports errors from the extraction stage; fall back to whitespace
		slog.Debug("prose tokenization failed, splitting on whitespace", "error", err)
		return strings.Fields(text)
	}

	tokens := doc.Tokens()
	words := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Text != "" {
			words = append(words, tok.Text)
		}
	}
	return words
}

// isPunctuation reports whether token consists only of punctuation or symbols.
func isPunctuation(token string) bool {
	for _, r := range token {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}
