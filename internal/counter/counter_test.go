package counter

import (
	"testing"
)

func TestWordCounter(t *testing.T) {
	counter, err := NewCounter(Words)
	if err != nil {
		t.Fatalf("NewCounter(Words) error: %v", err)
	}

	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"empty string", "", 0},
		{"single word", "hello", 1},
		{"multiple words", "hello world test", 3},
		{"whitespace handling", "  hello \n  world\t ", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := counter.Count(tt.text); got != tt.expected {
				t.Errorf("Count(%q) = %d, want %d", tt.text, got, tt.expected)
			}
		})
	}
}

func TestCharCounter(t *testing.T) {
	counter, err := NewCounter(Characters)
	if err != nil {
		t.Fatalf("NewCounter(Characters) error: %v", err)
	}

	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"empty string", "", 0},
		{"ascii", "hello", 5},
		{"accented rune", "café", 4},
		{"whitespace included", "a b", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := counter.Count(tt.text); got != tt.expected {
				t.Errorf("Count(%q) = %d, want %d", tt.text, got, tt.expected)
			}
		})
	}
}

func TestTokenCounter(t *testing.T) {
	counter, err := NewCounter(Tokens)
	if err != nil {
		t.Fatalf("NewCounter(Tokens) error: %v", err)
	}

	if got := counter.Count(""); got != 0 {
		t.Errorf("Count(\"\") = %d, want 0", got)
	}
	// exact counts depend on the encoding version; only check they are positive
	if got := counter.Count("The cat sat on the mat."); got <= 0 {
		t.Errorf("Count() = %d, want a positive number", got)
	}
}

func TestNewCounterNames(t *testing.T) {
	tests := []struct {
		method CountingMethod
		want   string
	}{
		{Tokens, "tokens (cl100k_base)"},
		{Words, "words"},
		{Characters, "characters"},
		{CountingMethod(42), "words"},
	}

	for _, tt := range tests {
		t.Run(tt.method.String(), func(t *testing.T) {
			c, err := NewCounter(tt.method)
			if err != nil {
				t.Fatalf("NewCounter(%v) error: %v", tt.method, err)
			}
			if c.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", c.Name(), tt.want)
			}
		})
	}
}

func TestCountingMethodString(t *testing.T) {
	tests := []struct {
		method   CountingMethod
		expected string
	}{
		{Tokens, "tokens"},
		{Words, "words"},
		{Characters, "characters"},
		{CountingMethod(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.method.String(); got != tt.expected {
				t.Errorf("CountingMethod(%d).String() = %q, want %q", int(tt.method), got, tt.expected)
			}
		})
	}
}
