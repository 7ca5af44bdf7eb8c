// Package tfidf provides TF-IDF (Term Frequency-Inverse Document Frequency) ranking of
// documents and sentences against a free-text query.
//
// The package is the scoring core of questions. It works in two stages:
//   - documents are ranked by the sum of TF×IDF over the query words they contain
//   - sentences of the best documents are ranked by the sum of IDF over matched words,
//     with query-term density breaking ties
//
// Usage Example:
//
//	docs := []tfidf.Document{{ID: "a.txt", Tokens: tfidf.Tokenize(text)}}
//	idfs := tfidf.ComputeIDFs(docs)
//	query := tfidf.NewQuery(tfidf.Tokenize("what is a cat?"))
//	best := tfidf.TopFiles(query, docs, idfs, 1)
//
// Every function here is pure: tables are recomputed from their inputs on each call
// and nothing is cached between calls.
package tfidf

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
)

// Document is a named token sequence: a whole file or a single sentence.
type Document struct {
	ID     string   // file name, URL or sentence text
	Tokens []string // normalized tokens, in order, duplicates preserved
}

// IDF maps a word to its inverse document frequency over one collection.
type IDF map[string]float64

// Query is a set of normalized query words.
type Query map[string]struct{}

// NewQuery collapses tokens into a query set.
func NewQuery(tokens []string) Query {
	q := make(Query, len(tokens))
	for _, token := range tokens {
		q[token] = struct{}{}
	}
	return q
}

// Has reports whether word is part of the query.
func (q Query) Has(word string) bool {
	_, ok := q[word]
	return ok
}

// Terms returns the query words in sorted order.
func (q Query) Terms() []string {
	terms := make([]string, 0, len(q))
	for term := range q {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// FileScore is a document with its TF-IDF score.
type FileScore struct {
	ID    string
	Score float64
}

// SentenceScore is a sentence with its two ranking keys.
type SentenceScore struct {
	ID      string
	IDFSum  float64 // sum of IDF over distinct matched words
	Density float64 // share of token occurrences that are query words, in [0, 1]
}

// Options controls how the scoring pass is executed.
type Options struct {
	// Workers is the number of concurrent scoring shards; values below 2 score sequentially.
	Workers int
}

// ComputeIDFs calculates the inverse document frequency of every word in docs.
//
// Parameters:
//   - docs: the collection the table describes
//
// Returns:
//   - IDF: one entry per distinct word present in at least one document
//
// The weight is ln((D+1)/(d+1)) where D is the number of documents and d the
// number of documents containing the word. It is zero for a word present in every
// document and grows as the word gets rarer.
func ComputeIDFs(docs []Document) IDF {
	docFrequencies := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc.Tokens))
		for _, token := range doc.Tokens {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			docFrequencies[token]++
		}
	}

	total := float64(len(docs) + 1)
	idfs := make(IDF, len(docFrequencies))
	for word, df := range docFrequencies {
		idfs[word] = math.Log(total / float64(df+1))
	}

	slog.Debug("IDF table computed", "documents", len(docs), "terms", len(idfs))
	return idfs
}

// ScoreFile returns the TF-IDF score of a single document.
// Each distinct document word found in the query contributes its raw count in the
// document times its IDF; words without an IDF entry contribute nothing.
func ScoreFile(query Query, doc Document, idfs IDF) float64 {
	if len(query) == 0 || len(doc.Tokens) == 0 {
		return 0
	}

	counts := make(map[string]int)
	var distinct []string
	for _, token := range doc.Tokens {
		if counts[token] == 0 {
			distinct = append(distinct, token)
		}
		counts[token]++
	}

	// sum in first-occurrence order so identical input gives bit-identical scores
	var score float64
	for _, word := range distinct {
		if !query.Has(word) {
			continue
		}
		score += float64(counts[word]) * idfs[word]
	}
	return score
}

// RankFiles scores every document and returns them best first.
// Documents with equal scores keep their input order.
func RankFiles(query Query, docs []Document, idfs IDF, opts Options) []FileScore {
	scores := make([]FileScore, len(docs))
	scoreShards(len(docs), opts.Workers, func(i int) {
		scores[i] = FileScore{ID: docs[i].ID, Score: ScoreFile(query, docs[i], idfs)}
	})

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	slog.Debug("Files ranked", "documents", len(docs), "queryTerms", len(query))
	return scores
}

// TopFiles returns the IDs of the n documents that best match query by TF-IDF.
//
// Parameters:
//   - query: set of normalized query words
//   - docs: documents in input order (the tie-break order)
//   - idfs: IDF table computed over docs
//   - n: maximum number of results; n <= 0 yields none
//
// A document is returned even when every score is zero: a lack of score
// differentiation is not a lack of results.
func TopFiles(query Query, docs []Document, idfs IDF, n int) []string {
	if n <= 0 {
		return []string{}
	}
	ranked := RankFiles(query, docs, idfs, Options{})
	ids := make([]string, 0, min(n, len(ranked)))
	for _, fs := range ranked[:min(n, len(ranked))] {
		ids = append(ids, fs.ID)
	}
	return ids
}

// ScoreSentence returns the IDF sum and query-term density of one sentence.
// The sentence must have at least one token.
func ScoreSentence(query Query, sentence Document, idfs IDF) SentenceScore {
	mustHaveTokens(sentence)

	var idfSum float64
	var matches int
	seen := make(map[string]struct{}, len(sentence.Tokens))
	for _, token := range sentence.Tokens {
		if !query.Has(token) {
			continue
		}
		matches++
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		idfSum += idfs[token]
	}

	return SentenceScore{
		ID:      sentence.ID,
		IDFSum:  idfSum,
		Density: float64(matches) / float64(len(sentence.Tokens)),
	}
}

// RankSentences scores every sentence and returns them best first: by IDF sum,
// then by query-term density, then by input order.
//
// It panics if a sentence has no tokens; callers must drop such sentences first.
func RankSentences(query Query, sentences []Document, idfs IDF, opts Options) []SentenceScore {
	// check the precondition up front so a violation surfaces on the caller's goroutine
	for _, sentence := range sentences {
		mustHaveTokens(sentence)
	}

	scores := make([]SentenceScore, len(sentences))
	scoreShards(len(sentences), opts.Workers, func(i int) {
		scores[i] = ScoreSentence(query, sentences[i], idfs)
	})

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].IDFSum != scores[j].IDFSum {
			return scores[i].IDFSum > scores[j].IDFSum
		}
		return scores[i].Density > scores[j].Density
	})

	slog.Debug("Sentences ranked", "sentences", len(sentences), "queryTerms", len(query))
	return scores
}

// TopSentences returns the IDs of the n sentences that best match query.
// See RankSentences for ordering; n <= 0 yields none.
func TopSentences(query Query, sentences []Document, idfs IDF, n int) []string {
	if n <= 0 {
		return []string{}
	}
	ranked := RankSentences(query, sentences, idfs, Options{})
	ids := make([]string, 0, min(n, len(ranked)))
	for _, ss := range ranked[:min(n, len(ranked))] {
		ids = append(ids, ss.ID)
	}
	return ids
}

func mustHaveTokens(sentence Document) {
	if len(sentence.Tokens) == 0 {
		panic(fmt.Sprintf("tfidf: sentence %q has no tokens", sentence.ID))
	}
}
