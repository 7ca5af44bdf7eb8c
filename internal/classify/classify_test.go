package classify_test

import (
	"math"
	"testing"

	"github.com/chriscorrea/questions/internal/classify"
)

func TestNewClassifier(t *testing.T) {
	classifier := classify.NewClassifier()
	if classifier == nil {
		t.Fatal("NewClassifier() returned nil")
	}
}

func TestClassifier_IsBoilerplate(t *testing.T) {
	classifier := classify.NewClassifier()

	tests := []struct {
		name        string
		passage     string
		index       int
		total       int
		expected    bool
		description string
	}{
		{
			name:        "empty passage",
			passage:     "",
			index:       0,
			total:       1,
			expected:    true,
			description: "passages without words are boilerplate",
		},
		{
			name:        "digits and punctuation only",
			passage:     "*** 1865 ***",
			index:       2,
			total:       5,
			expected:    true,
			description: "passages without alphabetic words are boilerplate",
		},
		{
			name:        "e-book header",
			passage:     "The Project Gutenberg eBook of Alice's Adventures in Wonderland",
			index:       0,
			total:       10,
			expected:    true,
			description: "archive headers at the start are boilerplate",
		},
		{
			name:        "copyright footer",
			passage:     "Copyright 2024. All rights reserved.",
			index:       9,
			total:       10,
			expected:    true,
			description: "copyright lines at the end are boilerplate",
		},
		{
			name:        "narrative in the middle",
			passage:     "Alice was beginning to get very tired of sitting by her sister on the bank, and of having nothing to do.",
			index:       5,
			total:       10,
			expected:    false,
			description: "story text is content",
		},
		{
			name:        "short document",
			passage:     "Produced by volunteers.",
			index:       0,
			total:       1,
			expected:    false,
			description: "short documents use the lenient threshold",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classifier.IsBoilerplate(tt.passage, tt.index, tt.total)
			if result != tt.expected {
				t.Errorf("IsBoilerplate() = %v, expected %v\nPassage: %q\nPosition: %d/%d\nDescription: %s",
					result, tt.expected, tt.passage, tt.index+1, tt.total, tt.description)
			}
		})
	}
}

func TestClassifier_PositionThreshold(t *testing.T) {
	classifier := classify.NewClassifier()

	// two markers out of ten words: above the edge threshold, below the middle one
	passage := "This edition was released for a few friends and neighbours"

	if !classifier.IsBoilerplate(passage, 0, 10) {
		t.Error("expected first passage to be classified as boilerplate")
	}
	if !classifier.IsBoilerplate(passage, 9, 10) {
		t.Error("expected last passage to be classified as boilerplate")
	}
	if classifier.IsBoilerplate(passage, 5, 10) {
		t.Error("expected middle passage to NOT be classified as boilerplate")
	}
}

func TestClassifier_InvalidPositions(t *testing.T) {
	classifier := classify.NewClassifier()

	tests := []struct {
		name  string
		index int
		total int
	}{
		{"zero total", 0, 0},
		{"negative index", -1, 5},
		{"index beyond total", 10, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if classifier.IsBoilerplate("Copyright", tt.index, tt.total) {
				t.Errorf("IsBoilerplate() at %d/%d = true, want false", tt.index, tt.total)
			}
		})
	}
}

func TestClassifier_MarkerRatio(t *testing.T) {
	classifier := classify.NewClassifier()

	tests := []struct {
		name  string
		words []string
		want  float64
	}{
		{"empty", nil, 0},
		{"half markers", []string{"copyright", "cat"}, 0.5},
		{"stemmed markers", []string{"licensed", "licenses", "editions"}, 1},
		{"no markers", []string{"rabbit", "hole"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.MarkerRatio(tt.words)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("MarkerRatio(%v) = %f, want %f", tt.words, got, tt.want)
			}
		})
	}
}
