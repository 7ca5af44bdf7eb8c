// Package app contains the question answering pipeline of the questions CLI.
// It wires corpus loading, segmentation and ranking together, separated from CLI concerns.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/chriscorrea/bm25md"
	"github.com/chriscorrea/questions/internal/classify"
	"github.com/chriscorrea/questions/internal/corpus"
	"github.com/chriscorrea/questions/internal/segment"
	"github.com/chriscorrea/questions/internal/spinner"
	"github.com/chriscorrea/questions/internal/tfidf"
)

// Scorer selects the ranking used for the document stage.
type Scorer int

const (
	// TFIDF ranks documents by summed term frequency × inverse document frequency (default)
	TFIDF Scorer = iota
	// BM25 ranks documents with field-weighted BM25 over their raw Markdown text
	BM25
)

// String returns the string representation of the scorer
func (s Scorer) String() string {
	switch s {
	case TFIDF:
		return "tfidf"
	case BM25:
		return "bm25"
	default:
		return "unknown"
	}
}

// Config holds all configuration options for answering one query.
type Config struct {
	CorpusDir       string   // directory of documents
	URLs            []string // extra web pages added to the corpus
	Extensions      []string // accepted document extensions
	Selector        string   // CSS selector for HTML documents
	MaxFileSize     int64    // per-document byte limit (0 = default)
	Query           string
	FileMatches     int // documents kept after the first stage
	SentenceMatches int // sentences returned
	Scorer          Scorer
	Workers         int  // concurrent scoring shards
	SkipBoilerplate bool // drop licence headers and similar passages before sentence ranking
	OutputFormat    OutputFormat
	Quiet           bool // suppress progress output
	Debug           bool
}

// FileMatch is a ranked document.
type FileMatch struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// Match is a ranked sentence and the document it came from.
type Match struct {
	Text    string  `json:"text"`
	File    string  `json:"file"`
	IDFSum  float64 `json:"idf_sum"`
	Density float64 `json:"density"`
}

// Result is the answer to a query.
type Result struct {
	Query     string      `json:"query"`
	Terms     []string    `json:"terms"` // normalized query words
	Files     []FileMatch `json:"files"`
	Sentences []Match     `json:"sentences"`
}

// Run answers cfg.Query from the configured corpus.
//
// Processing Pipeline:
// 1. load the corpus and tokenize every document once
// 2. rank documents and keep the best FileMatches
// 3. split those documents into sentences, dropping empty and duplicate ones
// 4. rank sentences against an IDF table computed over that sentence set
//
// ctx allows cancellation between stages and of URL fetches.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.FileMatches < 1 || cfg.SentenceMatches < 1 {
		return nil, fmt.Errorf("file and sentence matches must be at least 1 (got %d and %d)", cfg.FileMatches, cfg.SentenceMatches)
	}

	var sp *spinner.Spinner
	if !cfg.Quiet {
		sp = spinner.New(os.Stderr, "Loading corpus...")
		sp.Start(ctx)
		defer sp.Stop()
	}
	progress := func(message string) {
		if sp != nil {
			sp.Update(message)
		}
	}

	// step 1: load and tokenize
	docs, err := corpus.Load(ctx, corpusOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	tokenized := make([]tfidf.Document, len(docs))
	texts := make(map[string]string, len(docs))
	for i, doc := range docs {
		tokenized[i] = tfidf.Document{ID: doc.ID, Tokens: tfidf.Tokenize(doc.Text)}
		texts[doc.ID] = doc.Text
	}

	query := tfidf.NewQuery(tfidf.Tokenize(cfg.Query))
	result := &Result{Query: cfg.Query, Terms: query.Terms()}
	if len(query) == 0 {
		slog.Debug("Query has no content words after tokenization", "query", cfg.Query)
	}

	// step 2: document stage
	progress("Ranking files...")
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts := tfidf.Options{Workers: cfg.Workers}
	ranked, err := rankFiles(cfg, query, docs, tokenized, opts)
	if err != nil {
		return nil, err
	}
	for _, fs := range ranked[:min(cfg.FileMatches, len(ranked))] {
		result.Files = append(result.Files, FileMatch{ID: fs.ID, Score: fs.Score})
	}

	// step 3: sentences of the best documents
	progress("Ranking sentences...")
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sentences, origins := collectSentences(result.Files, texts, cfg.SkipBoilerplate)
	if len(sentences) == 0 {
		slog.Debug("No sentences with content words in top files", "files", len(result.Files))
		return result, nil
	}

	// step 4: sentence stage, with IDFs scoped to the candidate sentences
	idfs := tfidf.ComputeIDFs(sentences)
	scored := tfidf.RankSentences(query, sentences, idfs, opts)
	for _, ss := range scored[:min(cfg.SentenceMatches, len(scored))] {
		result.Sentences = append(result.Sentences, Match{
			Text:    ss.ID,
			File:    origins[ss.ID],
			IDFSum:  ss.IDFSum,
			Density: ss.Density,
		})
	}

	slog.Debug("Query answered", "query", cfg.Query, "files", len(result.Files), "sentences", len(result.Sentences))
	return result, nil
}

// corpusOptions maps the run configuration onto loader options.
func corpusOptions(cfg Config) corpus.Options {
	return corpus.Options{
		Dir:         cfg.CorpusDir,
		Extensions:  cfg.Extensions,
		URLs:        cfg.URLs,
		Selector:    cfg.Selector,
		MaxFileSize: cfg.MaxFileSize,
	}
}

// rankFiles ranks every document with the configured scorer.
func rankFiles(cfg Config, query tfidf.Query, docs []corpus.Document, tokenized []tfidf.Document, opts tfidf.Options) ([]tfidf.FileScore, error) {
	switch cfg.Scorer {
	case TFIDF:
		idfs := tfidf.ComputeIDFs(tokenized)
		return tfidf.RankFiles(query, tokenized, idfs, opts), nil
	case BM25:
		return rankFilesBM25(cfg.Query, docs), nil
	default:
		return nil, fmt.Errorf("unknown scorer %v", cfg.Scorer)
	}
}

// rankFilesBM25 ranks documents with bm25md; equal scores keep corpus order.
func rankFilesBM25(query string, docs []corpus.Document) []tfidf.FileScore {
	bm := bm25md.NewCorpus()
	parser := bm25md.NewMarkdownFieldParser()
	for i, doc := range docs {
		bm.AddDocument(bm25md.Document{
			ID:       i,
			Fields:   parser.ParseDocument(doc.Text),
			Original: doc.Text,
		})
	}

	scores := make([]tfidf.FileScore, len(docs))
	for i, doc := range docs {
		scores[i] = tfidf.FileScore{ID: doc.ID, Score: bm.Score(query, i)}
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	return scores
}

// collectSentences splits the given files into tokenized sentences, in file rank
// order. Sentences without content words are dropped (they cannot be scored) and a
// sentence text seen twice is kept once, attributed to its first file.
func collectSentences(files []FileMatch, texts map[string]string, skipBoilerplate bool) ([]tfidf.Document, map[string]string) {
	var sentences []tfidf.Document
	origins := make(map[string]string)

	var classifier *classify.Classifier
	if skipBoilerplate {
		classifier = classify.NewClassifier()
	}

	for _, file := range files {
		passages := segment.Passages(texts[file.ID])
		for i, passage := range passages {
			if classifier != nil && classifier.IsBoilerplate(passage, i, len(passages)) {
				slog.Debug("Skipping boilerplate passage", "file", file.ID, "passage", i)
				continue
			}
			for _, sentence := range segment.Sentences(passage) {
				if _, seen := origins[sentence]; seen {
					continue
				}
				tokens := tfidf.Tokenize(sentence)
				if len(tokens) == 0 {
					continue
				}
				origins[sentence] = file.ID
				sentences = append(sentences, tfidf.Document{ID: sentence, Tokens: tokens})
			}
		}
	}
	return sentences, origins
}

// IsNoDocuments reports whether err means the corpus was empty.
func IsNoDocuments(err error) bool {
	return errors.Is(err, corpus.ErrNoDocuments)
}

// joinTerms formats normalized query words for display.
func joinTerms(terms []string) string {
	if len(terms) == 0 {
		return "(no content words)"
	}
	return strings.Join(terms, ", ")
}
