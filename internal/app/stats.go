package app

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/chriscorrea/questions/internal/corpus"
	"github.com/chriscorrea/questions/internal/counter"
	"github.com/chriscorrea/questions/internal/segment"
	"github.com/chriscorrea/questions/internal/tfidf"
)

// DocumentStats describes one corpus document.
type DocumentStats struct {
	ID            string
	Units         int // size in the chosen counting unit
	ContentTokens int // tokens left after normalization
	Terms         int // distinct content tokens
	Passages      int
	Sentences     int
}

// Stats loads the corpus described by cfg and measures every document.
func Stats(ctx context.Context, cfg Config, method counter.CountingMethod) ([]DocumentStats, error) {
	textCounter, err := counter.NewCounter(method)
	if err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}

	docs, err := corpus.Load(ctx, corpusOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}

	stats := make([]DocumentStats, 0, len(docs))
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tokens := tfidf.Tokenize(doc.Text)
		passages := segment.Passages(doc.Text)
		sentences := 0
		for _, passage := range passages {
			sentences += len(segment.Sentences(passage))
		}

		stats = append(stats, DocumentStats{
			ID:            doc.ID,
			Units:         textCounter.Count(doc.Text),
			ContentTokens: len(tokens),
			Terms:         len(tfidf.NewQuery(tokens)),
			Passages:      len(passages),
			Sentences:     sentences,
		})
	}
	return stats, nil
}

// RenderStats formats document statistics as an aligned table with a total row.
func RenderStats(stats []DocumentStats, method counter.CountingMethod) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintf(w, "document\t%s\tcontent tokens\tterms\tpassages\tsentences\t\n", method)
	var total DocumentStats
	for _, s := range stats {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t\n", s.ID, s.Units, s.ContentTokens, s.Terms, s.Passages, s.Sentences)
		total.Units += s.Units
		total.ContentTokens += s.ContentTokens
		total.Passages += s.Passages
		total.Sentences += s.Sentences
	}
	fmt.Fprintf(w, "total (%d)\t%d\t%d\t-\t%d\t%d\t\n", len(stats), total.Units, total.ContentTokens, total.Passages, total.Sentences)

	_ = w.Flush()
	return b.String()
}
