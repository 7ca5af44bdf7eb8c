package tfidf

import (
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty string",
			text: "",
			want: []string{},
		},
		{
			name: "whitespace only",
			text: "  \n\t ",
			want: []string{},
		},
		{
			name: "simple words",
			text: "hello world",
			want: []string{"hello", "world"},
		},
		{
			name: "words with punctuation",
			text: "hello, world!",
			want: []string{"hello", "world"},
		},
		{
			name: "mixed case",
			text: "Hello World",
			want: []string{"hello", "world"},
		},
		{
			name: "stopwords removed",
			text: "the cat is on the mat",
			want: []string{"cat", "mat"},
		},
		{
			name: "sentences",
			text: "The cat sat. A dog ran fast.",
			want: []string{"cat", "sat", "dog", "ran", "fast"},
		},
		{
			name: "duplicates preserved",
			text: "dog dog cat dog",
			want: []string{"dog", "dog", "cat", "dog"},
		},
		{
			name: "only stopwords and punctuation",
			text: "Is it? It is!",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if got == nil {
				t.Fatal("Tokenize() returned nil, want empty slice")
			}
			if len(got) != len(tt.want) {
				t.Errorf("Tokenize() = %v, want %v", got, tt.want)
				return
			}
			for i, token := range got {
				if token != tt.want[i] {
					t.Errorf("Tokenize() token[%d] = %s, want %s", i, token, tt.want[i])
				}
			}
		})
	}
}

func TestTokenize_Deterministic(t *testing.T) {
	text := "Artificial intelligence, machine learning; and (deep) learning!"
	first := Tokenize(text)
	for i := 0; i < 5; i++ {
		if got := Tokenize(text); !equalStrings(got, first) {
			t.Fatalf("Tokenize() run %d = %v, want %v", i, got, first)
		}
	}
}

func TestIsPunctuation(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{".", true},
		{"...", true},
		{"--", true},
		{"$", true},
		{"cat", false},
		{"e-mail", false},
		{"42", false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			if got := isPunctuation(tt.token); got != tt.want {
				t.Errorf("isPunctuation(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestIsStopword(t *testing.T) {
	for _, word := range []string{"the", "is", "of", "and", "wouldn't"} {
		if !IsStopword(word) {
			t.Errorf("IsStopword(%q) = false, want true", word)
		}
	}
	for _, word := range []string{"cat", "The", "learning"} {
		if IsStopword(word) {
			t.Errorf("IsStopword(%q) = true, want false", word)
		}
	}
}
