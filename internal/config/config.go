// Package config loads questions settings from a YAML file with environment-variable
// overrides. Command-line flags are applied on top by the CLI.
//
// Precedence, lowest to highest: defaults, YAML file, QUESTIONS_* environment
// variables, flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Scorer names accepted for the document stage.
const (
	ScorerTFIDF = "tfidf"
	ScorerBM25  = "bm25"
)

// Output names accepted for rendering.
const (
	OutputText     = "text"
	OutputMarkdown = "md"
	OutputJSON     = "json"
)

// Config is the file/environment form of the application settings.
type Config struct {
	FileMatches     int      `yaml:"file_matches"`     // documents kept after the first stage
	SentenceMatches int      `yaml:"sentence_matches"` // sentences returned
	Extensions      []string `yaml:"extensions"`
	Scorer          string   `yaml:"scorer"`
	Workers         int      `yaml:"workers"`
	SkipBoilerplate bool     `yaml:"skip_boilerplate"`
	Output          string   `yaml:"output"`
	Selector        string   `yaml:"selector"`
	MaxFileSize     int64    `yaml:"max_file_size"`
}

// Default returns the settings used when nothing else is configured.
func Default() Config {
	return Config{
		FileMatches:     1,
		SentenceMatches: 1,
		Extensions:      []string{".txt"},
		Scorer:          ScorerTFIDF,
		Workers:         1,
		Output:          OutputText,
		MaxFileSize:     50 * 1024 * 1024,
	}
}

// Load reads a YAML config file (if path is not empty), applies environment
// overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if c.FileMatches < 1 {
		return fmt.Errorf("%w: file_matches must be at least 1, got %d", ErrInvalid, c.FileMatches)
	}
	if c.SentenceMatches < 1 {
		return fmt.Errorf("%w: sentence_matches must be at least 1, got %d", ErrInvalid, c.SentenceMatches)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalid, c.Workers)
	}
	if c.MaxFileSize < 0 {
		return fmt.Errorf("%w: max_file_size must not be negative", ErrInvalid)
	}
	switch c.Scorer {
	case ScorerTFIDF, ScorerBM25:
	default:
		return fmt.Errorf("%w: unknown scorer %q", ErrInvalid, c.Scorer)
	}
	switch c.Output {
	case OutputText, OutputMarkdown, OutputJSON:
	default:
		return fmt.Errorf("%w: unknown output format %q", ErrInvalid, c.Output)
	}
	return nil
}

// applyEnvOverrides reads QUESTIONS_* environment variables.
func applyEnvOverrides(cfg *Config) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"QUESTIONS_FILE_MATCHES", &cfg.FileMatches},
		{"QUESTIONS_SENTENCE_MATCHES", &cfg.SentenceMatches},
		{"QUESTIONS_WORKERS", &cfg.Workers},
	}
	for _, env := range ints {
		v := os.Getenv(env.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalid, env.key, v)
		}
		*env.dst = n
	}

	if v := os.Getenv("QUESTIONS_EXTENSIONS"); v != "" {
		cfg.Extensions = strings.Split(v, ",")
	}
	if v := os.Getenv("QUESTIONS_SCORER"); v != "" {
		cfg.Scorer = strings.ToLower(v)
	}
	if v := os.Getenv("QUESTIONS_OUTPUT"); v != "" {
		cfg.Output = strings.ToLower(v)
	}
	if v := os.Getenv("QUESTIONS_SELECTOR"); v != "" {
		cfg.Selector = v
	}
	if v := os.Getenv("QUESTIONS_SKIP_BOILERPLATE"); v != "" {
		skip, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: QUESTIONS_SKIP_BOILERPLATE=%q is not a boolean", ErrInvalid, v)
		}
		cfg.SkipBoilerplate = skip
	}
	return nil
}
