package app

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OutputFormat defines the output format for results
type OutputFormat int

const (
	// plain text, one sentence per line (default)
	Text OutputFormat = iota
	// markdown report with files and sentences
	Markdown
	// JSON output format
	JSON
)

// String returns the string representation of the output
func (f OutputFormat) String() string {
	switch f {
	case Text:
		return "Text"
	case Markdown:
		return "Markdown"
	case JSON:
		return "JSON"
	default:
		return "Unknown"
	}
}

// Render formats a result for printing.
func Render(result *Result, format OutputFormat) (string, error) {
	if result == nil {
		return "", fmt.Errorf("no result to render")
	}

	switch format {
	case Text:
		return renderText(result), nil
	case Markdown:
		return renderMarkdown(result), nil
	case JSON:
		return renderJSON(result)
	default:
		return "", fmt.Errorf("unknown output format %v", format)
	}
}

func renderText(result *Result) string {
	var b strings.Builder
	for _, match := range result.Sentences {
		b.WriteString(match.Text)
		b.WriteString("\n")
	}
	return b.String()
}

func renderMarkdown(result *Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Query\n\n%s\n\nTerms: %s\n\n", result.Query, joinTerms(result.Terms))

	b.WriteString("## Files\n\n")
	for i, file := range result.Files {
		fmt.Fprintf(&b, "%d. %s (score %.4f)\n", i+1, file.ID, file.Score)
	}

	b.WriteString("\n## Sentences\n\n")
	if len(result.Sentences) == 0 {
		b.WriteString("_No matching sentence._\n")
	}
	for _, match := range result.Sentences {
		fmt.Fprintf(&b, "> %s\n\nFrom %s (idf %.4f, density %.2f)\n\n", match.Text, match.File, match.IDFSum, match.Density)
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func renderJSON(result *Result) (string, error) {
	// nil slices would encode as null
	out := *result
	if out.Terms == nil {
		out.Terms = []string{}
	}
	if out.Files == nil {
		out.Files = []FileMatch{}
	}
	if out.Sentences == nil {
		out.Sentences = []Match{}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(data) + "\n", nil
}
