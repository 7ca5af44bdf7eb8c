package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") unexpected error: %v", err)
	}
	if cfg.FileMatches != 1 || cfg.SentenceMatches != 1 {
		t.Errorf("defaults = %d/%d, want 1/1", cfg.FileMatches, cfg.SentenceMatches)
	}
	if cfg.Scorer != ScorerTFIDF || cfg.Output != OutputText {
		t.Errorf("defaults scorer=%q output=%q", cfg.Scorer, cfg.Output)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
file_matches: 3
sentence_matches: 2
extensions: [".txt", ".md"]
scorer: bm25
workers: 4
skip_boilerplate: true
output: json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.FileMatches != 3 || cfg.SentenceMatches != 2 {
		t.Errorf("matches = %d/%d, want 3/2", cfg.FileMatches, cfg.SentenceMatches)
	}
	if len(cfg.Extensions) != 2 || cfg.Extensions[1] != ".md" {
		t.Errorf("extensions = %v", cfg.Extensions)
	}
	if cfg.Scorer != ScorerBM25 || cfg.Workers != 4 || !cfg.SkipBoilerplate || cfg.Output != OutputJSON {
		t.Errorf("unexpected config: %+v", cfg)
	}
	// keys missing from the file keep their defaults
	if cfg.MaxFileSize != Default().MaxFileSize {
		t.Errorf("max_file_size = %d, want default", cfg.MaxFileSize)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "file_matches: 3\nsentence_matches: 2\n")
	t.Setenv("QUESTIONS_FILE_MATCHES", "5")
	t.Setenv("QUESTIONS_SCORER", "BM25")
	t.Setenv("QUESTIONS_SKIP_BOILERPLATE", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.FileMatches != 5 {
		t.Errorf("file_matches = %d, want 5 from environment", cfg.FileMatches)
	}
	if cfg.SentenceMatches != 2 {
		t.Errorf("sentence_matches = %d, want 2 from file", cfg.SentenceMatches)
	}
	if cfg.Scorer != ScorerBM25 || !cfg.SkipBoilerplate {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		invalid bool
	}{
		{name: "malformed yaml", content: "file_matches: [1"},
		{name: "zero file matches", content: "file_matches: 0", invalid: true},
		{name: "negative sentence matches", content: "sentence_matches: -1", invalid: true},
		{name: "unknown scorer", content: "scorer: cosine", invalid: true},
		{name: "unknown output", content: "output: xml", invalid: true},
		{name: "non-integer env", content: "", env: map[string]string{"QUESTIONS_WORKERS": "many"}, invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if tt.invalid && !errors.Is(err, ErrInvalid) {
				t.Errorf("Load() error = %v, want ErrInvalid", err)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing file expected error, got nil")
	}
}
