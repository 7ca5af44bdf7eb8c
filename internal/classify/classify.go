// Package classify detects boilerplate passages in corpus documents.
//
// Plain-text corpora collected from the web or from e-book archives often carry
// licence headers, transcriber notes and copyright footers around the real content.
// Those passages are full of distinctive words that would otherwise win sentence
// ranking for queries like "who wrote this". The classifier scores each passage by the
// share of stemmed marker words it contains and compares it against a threshold that
// is stricter near the start and end of a document, where boilerplate usually sits.
package classify

import (
	"math"
	"regexp"
	"strings"

	"github.com/kljensen/snowball"
)

// markerStems holds snowball stems of words typical of boilerplate passages.
var markerStems = map[string]struct{}{
	// e-book archives
	"ebook":      {},
	"gutenberg":  {},
	"transcrib":  {},
	"produc":     {}, // from "produced by"
	"edit":       {}, // from "edition"
	"releas":     {},
	"encod":      {},
	"chapter":    {},
	"content":    {}, // from "table of contents"
	"illustr":    {},
	"titl":       {},
	"volum":      {},
	"project":    {},
	"archiv":     {},
	"digit":      {}, // from "digitized"
	"distribut":  {},
	"donat":      {},
	"www":        {},
	"http":       {},
	"https":      {},
	"org":        {},
	"com":        {},
	"isbn":       {},
	"page":       {},
	"footnot":    {},
	"appendix":   {},
	"glossari":   {},
	"index":      {},
	"navig":      {},
	"share":      {},
	"subscrib":   {},
	"updat":      {},

	// legal
	"copyright":   {},
	"licens":      {},
	"licenc":      {},
	"trademark":   {},
	"warranti":    {},
	"liabil":      {},
	"permiss":     {},
	"reproduc":    {},
	"reserv":      {},
	"right":       {},
	"term":        {},
	"polici":      {},
	"privaci":     {},
	"agreement":   {},
	"redistribut": {},
}

// wordRegex extracts alphabetic words.
var wordRegex = regexp.MustCompile(`[a-z]+`)

// Classifier decides whether a passage is boilerplate.
type Classifier struct {
	stems map[string]string // word -> stem, reused across passages
}

// NewClassifier creates a Classifier with an empty stem cache.
// A Classifier is not safe for concurrent use.
func NewClassifier() *Classifier {
	return &Classifier{stems: make(map[string]string)}
}

// IsBoilerplate reports whether passage should be left out of sentence ranking.
//
// Parameters:
//   - passage: text of the passage
//   - index: zero-based position of the passage in its document
//   - total: number of passages in the document
//
// Invalid positions are never classified as boilerplate; passages without any
// alphabetic word always are.
func (c *Classifier) IsBoilerplate(passage string, index, total int) bool {
	if total <= 0 || index < 0 || index >= total {
		return false
	}

	words := wordRegex.FindAllString(strings.ToLower(passage), -1)
	if len(words) == 0 {
		return true
	}

	return c.MarkerRatio(words) > threshold(index, total)
}

// MarkerRatio returns the share of words whose stem is a boilerplate marker.
func (c *Classifier) MarkerRatio(words []string) float64 {
	if len(words) == 0 {
		return 0
	}

	markers := 0
	for _, word := range words {
		if _, ok := markerStems[c.stem(word)]; ok {
			markers++
		}
	}
	return float64(markers) / float64(len(words))
}

func (c *Classifier) stem(word string) string {
	if stemmed, ok := c.stems[word]; ok {
		return stemmed
	}
	stemmed, err := snowball.Stem(word, "english", true)
	if err != nil {
		stemmed = word
	}
	c.stems[word] = stemmed
	return stemmed
}

// threshold is 0.15 at the edges of a document and rises to 0.4 in the middle.
// Short documents get a flat 0.5 so a single licence line cannot swallow them.
func threshold(index, total int) float64 {
	const (
		edge   = 0.15
		middle = 0.4
	)
	if total <= 3 {
		return 0.5
	}

	position := float64(index) / float64(total-1)
	// 0 at either edge, 1 in the middle
	centrality := 1.0 - math.Abs(2.0*position-1.0)
	return edge + (middle-edge)*centrality
}
