// Package counter measures the size of corpus text for the stats command.
//
// Three units are supported: model tokens (tiktoken, cl100k_base), whitespace
// separated words, and Unicode characters. Model tokens are what matters when a
// corpus is later handed to a language model; words and characters are cheaper.
//
// Usage Example:
//
//	c, err := counter.NewCounter(counter.Words)
//	n := c.Count("Hello, world!") // 2
package counter

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// Counter counts units of text.
type Counter interface {
	// Count returns the number of units in text.
	Count(text string) int

	// Name returns a human-readable name for the unit.
	Name() string
}

// CountingMethod selects a counting unit.
type CountingMethod int

const (
	// Tokens counts cl100k_base model tokens
	Tokens CountingMethod = iota
	// Words counts whitespace-separated words
	Words
	// Characters counts runes
	Characters
)

// String returns the string representation of the counting method.
func (cm CountingMethod) String() string {
	switch cm {
	case Tokens:
		return "tokens"
	case Words:
		return "words"
	case Characters:
		return "characters"
	default:
		return "unknown"
	}
}

// NewCounter returns a Counter for method; unknown methods count words.
func NewCounter(method CountingMethod) (Counter, error) {
	switch method {
	case Tokens:
		return newTokenCounter()
	case Characters:
		return charCounter{}, nil
	default:
		return wordCounter{}, nil
	}
}

type wordCounter struct{}

func (wordCounter) Count(text string) int { return len(strings.Fields(text)) }
func (wordCounter) Name() string          { return "words" }

type charCounter struct{}

func (charCounter) Count(text string) int { return utf8.RuneCountInString(text) }
func (charCounter) Name() string          { return "characters" }

const encodingName = "cl100k_base"

// tokenCounter is safe for concurrent use.
type tokenCounter struct {
	mu       sync.Mutex
	encoding *tiktoken.Tiktoken
}

func newTokenCounter() (*tokenCounter, error) {
	encoding, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s encoding: %w", encodingName, err)
	}
	slog.Debug("Token counter ready", "encoding", encodingName)
	return &tokenCounter{encoding: encoding}, nil
}

func (tc *tokenCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	tc.mu.Lock()
	defer tc.mu.Unlock()
	// nil special-token sets: treat everything as plain text
	return len(tc.encoding.Encode(text, nil, nil))
}

func (tc *tokenCounter) Name() string {
	return "tokens (" + encodingName + ")"
}
