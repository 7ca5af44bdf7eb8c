package segment

import (
	"regexp"
	"strings"
	"sync"
)

// markupPatterns holds compiled patterns for the Markdown that HTML extraction leaves behind
type markupPatterns struct {
	header     *regexp.Regexp
	bulletList *regexp.Regexp
	numberList *regexp.Regexp
	codeFence  *regexp.Regexp
	inlineCode *regexp.Regexp
	bold       *regexp.Regexp
	italic     *regexp.Regexp
}

var (
	patterns     *markupPatterns
	patternsOnce sync.Once
)

// getMarkupPatterns returns the singleton instance of compiled markup patterns
func getMarkupPatterns() *markupPatterns {
	patternsOnce.Do(func() {
		patterns = &markupPatterns{
			header:     regexp.MustCompile(`^#{1,6}\s+`),
			bulletList: regexp.MustCompile(`^[-*+]\s+`),
			numberList: regexp.MustCompile(`^\d+\.\s+`),
			codeFence:  regexp.MustCompile(`^\x60{3}.*$`),
			inlineCode: regexp.MustCompile("\x60([^\x60]+)\x60"),
			bold:       regexp.MustCompile(`\*\*([^*]+)\*\*|__([^_]+)__`),
			italic:     regexp.MustCompile(`(^|[^\w*])\*([^*\s][^*]*)\*`),
		}
	})
	return patterns
}

// StripMarkup removes Markdown decoration from a single trimmed line, keeping its words.
// Heading and list markers go, emphasis and inline code keep their text, and a code
// fence line becomes empty.
func StripMarkup(line string) string {
	p := getMarkupPatterns()

	if p.codeFence.MatchString(line) {
		return ""
	}
	line = p.header.ReplaceAllString(line, "")
	line = p.bulletList.ReplaceAllString(line, "")
	line = p.numberList.ReplaceAllString(line, "")
	line = p.inlineCode.ReplaceAllString(line, "$1")
	line = p.bold.ReplaceAllString(line, "$1$2")
	line = p.italic.ReplaceAllString(line, "$1$2")
	return strings.TrimSpace(line)
}
