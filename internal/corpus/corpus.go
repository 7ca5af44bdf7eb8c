// Package corpus loads the documents a query is answered from.
//
// A corpus is a directory of text files, optionally extended with web pages. Every
// document is identified by its file name (or URL) and kept as plain text; HTML
// sources are reduced to their readable content first. Documents come back in a
// fixed order (file names sorted, then URLs as given) so rankings that break ties
// by input order are reproducible.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoDocuments is returned when a corpus contains no loadable document.
var ErrNoDocuments = errors.New("no documents found")

// DefaultMaxFileSize bounds a single document; the whole corpus is held in memory.
const DefaultMaxFileSize = 50 * 1024 * 1024

// Document is one corpus entry.
type Document struct {
	ID   string // file name or URL
	Text string
}

// Options describes where documents come from.
type Options struct {
	Dir         string   // directory scanned (non-recursively) for documents
	Extensions  []string // accepted file extensions, e.g. ".txt"; empty means ".txt"
	URLs        []string // web pages added after the directory's files
	Selector    string   // optional CSS selector applied to HTML documents
	MaxFileSize int64    // per-document byte limit; 0 means DefaultMaxFileSize
}

// Load reads every document described by opts.
//
// ctx is checked between documents and bounds HTTP requests.
func Load(ctx context.Context, opts Options) ([]Document, error) {
	if opts.Dir == "" && len(opts.URLs) == 0 {
		return nil, fmt.Errorf("no corpus directory or URL given")
	}
	limit := opts.MaxFileSize
	if limit <= 0 {
		limit = DefaultMaxFileSize
	}

	var docs []Document

	if opts.Dir != "" {
		paths, err := listFiles(opts.Dir, opts.Extensions)
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			text, err := readFile(path, opts.Selector, limit)
			if err != nil {
				return nil, err
			}
			docs = append(docs, Document{ID: filepath.Base(path), Text: text})
		}
	}

	for _, rawURL := range opts.URLs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := fetchPage(ctx, rawURL, opts.Selector, limit)
		if err != nil {
			return nil, err
		}
		docs = append(docs, Document{ID: rawURL, Text: text})
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("%w in %q (extensions %v)", ErrNoDocuments, opts.Dir, normalizeExtensions(opts.Extensions))
	}

	slog.Debug("Corpus loaded", "documents", len(docs), "dir", opts.Dir, "urls", len(opts.URLs))
	return docs, nil
}

// listFiles returns the regular files of dir with an accepted extension,
// sorted by name.
func listFiles(dir string, extensions []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("corpus directory %q does not exist", dir)
		}
		return nil, fmt.Errorf("failed to read corpus directory %q: %w", dir, err)
	}

	accepted := make(map[string]struct{})
	for _, ext := range normalizeExtensions(extensions) {
		accepted[ext] = struct{}{}
	}

	// os.ReadDir returns entries sorted by file name
	var paths []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if _, ok := accepted[strings.ToLower(filepath.Ext(entry.Name()))]; !ok {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

// normalizeExtensions lower-cases extensions and adds the leading dot.
func normalizeExtensions(extensions []string) []string {
	if len(extensions) == 0 {
		return []string{".txt"}
	}
	normalized := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	return normalized
}

// isHTML reports whether a file name or URL path points at an HTML page.
func isHTML(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm", ".xhtml":
		return true
	}
	return false
}
