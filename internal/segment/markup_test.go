package segment

import "testing"

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"plain", "The cat sat.", "The cat sat."},
		{"header", "## Getting Started", "Getting Started"},
		{"bullet", "- Supervised learning uses labels.", "Supervised learning uses labels."},
		{"star bullet", "* Unsupervised learning does not.", "Unsupervised learning does not."},
		{"numbered", "2. Preheat the oven.", "Preheat the oven."},
		{"bold", "This is **very** important.", "This is very important."},
		{"underscore bold", "This is __very__ important.", "This is very important."},
		{"italic", "An *emphasized* word.", "An emphasized word."},
		{"inline code", "Call `Run` to start.", "Call Run to start."},
		{"code fence", "```go", ""},
		{"arithmetic kept", "2 * 3 * 4 is 24.", "2 * 3 * 4 is 24."},
		{"hash without space", "#golang is a tag.", "#golang is a tag."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripMarkup(tt.line); got != tt.want {
				t.Errorf("StripMarkup(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestPassagesStripMarkup(t *testing.T) {
	text := "# Title\n\n```\ncode line\n```\n- first point\n"
	got := Passages(text)
	want := []string{"Title", "code line", "first point"}

	if len(got) != len(want) {
		t.Fatalf("Passages() = %q, want %q", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("Passages()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
