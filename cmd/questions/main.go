package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/chriscorrea/questions/internal/app"
	"github.com/chriscorrea/questions/internal/config"
	"github.com/chriscorrea/questions/internal/counter"
	"github.com/chriscorrea/questions/internal/spinner"

	"github.com/spf13/cobra"
)

// buildConfig constructs an app.Config from the config file, environment and command flags
func buildConfig(cmd *cobra.Command, args []string) (app.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	settings, err := config.Load(configPath)
	if err != nil {
		return app.Config{}, err
	}

	// flags win over file and environment, but only when given
	flags := cmd.Flags()
	if flags.Changed("files") {
		settings.FileMatches, _ = flags.GetInt("files")
	}
	if flags.Changed("sentences") {
		settings.SentenceMatches, _ = flags.GetInt("sentences")
	}
	if flags.Changed("ext") {
		settings.Extensions, _ = flags.GetStringSlice("ext")
	}
	if flags.Changed("scorer") {
		scorer, _ := flags.GetString("scorer")
		settings.Scorer = strings.ToLower(scorer)
	}
	if flags.Changed("workers") {
		settings.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("skip-boilerplate") {
		settings.SkipBoilerplate, _ = flags.GetBool("skip-boilerplate")
	}
	if flags.Changed("selector") {
		settings.Selector, _ = flags.GetString("selector")
	}

	mdFlag, _ := flags.GetBool("md")
	textFlag, _ := flags.GetBool("text")
	jsonFlag, _ := flags.GetBool("json")
	switch {
	case textFlag:
		settings.Output = config.OutputText
	case jsonFlag:
		settings.Output = config.OutputJSON
	case mdFlag:
		settings.Output = config.OutputMarkdown
	}

	// flag values have not been validated yet
	if err := settings.Validate(); err != nil {
		return app.Config{}, err
	}

	// determine scorer
	var scorer app.Scorer
	switch settings.Scorer {
	case config.ScorerBM25:
		scorer = app.BM25
	default:
		scorer = app.TFIDF
	}

	// determine output format
	var outputFormat app.OutputFormat
	switch settings.Output {
	case config.OutputMarkdown:
		outputFormat = app.Markdown
	case config.OutputJSON:
		outputFormat = app.JSON
	default:
		outputFormat = app.Text
	}

	var corpusDir string
	if len(args) > 0 {
		corpusDir = args[0]
	}

	query, _ := flags.GetString("query")
	urls, _ := flags.GetStringSlice("url")
	quiet, _ := flags.GetBool("quiet")
	debug, _ := flags.GetBool("debug")

	return app.Config{
		CorpusDir:       corpusDir,
		URLs:            urls,
		Extensions:      settings.Extensions,
		Selector:        settings.Selector,
		MaxFileSize:     settings.MaxFileSize,
		Query:           query,
		FileMatches:     settings.FileMatches,
		SentenceMatches: settings.SentenceMatches,
		Scorer:          scorer,
		Workers:         settings.Workers,
		SkipBoilerplate: settings.SkipBoilerplate,
		OutputFormat:    outputFormat,
		// no spinner when stderr is redirected
		Quiet: quiet || !spinner.IsTerminal(os.Stderr),
		Debug: debug,
	}, nil
}

// promptQuery asks for a query on in, once.
func promptQuery(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Query: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read query: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// setupLogger configures the default slog logger based on debug mode
func setupLogger(debug bool) {
	var level slog.Level
	if debug {
		level = slog.LevelDebug
	} else {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

var rootCmd = &cobra.Command{
	Use:   "questions [corpus-dir]",
	Short: "Answer questions from a corpus of documents",
	Long: `Questions finds the documents of a corpus most relevant to a query with TF-IDF, then
returns the sentences of those documents that best answer it.

Examples:
  questions corpus
  questions corpus -q "What are the types of supervised learning?"
  questions corpus --url https://go.dev/doc/faq -n 3 --md`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// build config from file, environment, flags and arguments
		cfg, err := buildConfig(cmd, args)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		// configure logging pending debug flag
		setupLogger(cfg.Debug)

		if !cmd.Flags().Changed("query") {
			cfg.Query, err = promptQuery(cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
		}

		// create context with signal handling for graceful shutdown
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		result, err := app.Run(ctx, cfg)
		if err != nil {
			return fmt.Errorf("questions failed: %w", err)
		}

		output, err := app.Render(result, cfg.OutputFormat)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), output)

		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats [corpus-dir]",
	Short: "Describe the documents of a corpus",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(cmd, args)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
		setupLogger(cfg.Debug)

		wordsFlag, _ := cmd.Flags().GetBool("words")
		charsFlag, _ := cmd.Flags().GetBool("chars")

		// determine counting method
		var method counter.CountingMethod
		switch {
		case wordsFlag:
			method = counter.Words
		case charsFlag:
			method = counter.Characters
		default:
			method = counter.Tokens
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		stats, err := app.Stats(ctx, cfg, method)
		if err != nil {
			return fmt.Errorf("stats failed: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), app.RenderStats(stats, method))
		return nil
	},
}

func init() {
	// corpus flags, shared with the stats subcommand
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().StringSlice("url", nil, "Add a web page to the corpus (repeatable)")
	rootCmd.PersistentFlags().StringSlice("ext", nil, "Accepted document extension (repeatable, default: .txt)")
	rootCmd.PersistentFlags().StringP("selector", "s", "", "CSS selector applied to HTML documents")

	// query flags
	rootCmd.Flags().StringP("query", "q", "", "Query to answer (prompted for when omitted)")
	rootCmd.Flags().IntP("files", "f", 1, "Number of top documents searched for sentences")
	rootCmd.Flags().IntP("sentences", "n", 1, "Number of sentences returned")
	rootCmd.Flags().String("scorer", config.ScorerTFIDF, "Document scorer: tfidf or bm25")
	rootCmd.Flags().IntP("workers", "w", 1, "Concurrent scoring workers")
	rootCmd.Flags().Bool("skip-boilerplate", false, "Ignore licence headers and similar boilerplate passages")

	// output format flags
	rootCmd.Flags().Bool("text", false, "Output matching sentences as plain text (default)")
	rootCmd.Flags().Bool("md", false, "Output in Markdown format")
	rootCmd.Flags().Bool("json", false, "Output in JSON format")

	// output format flags are mutually exclusive
	rootCmd.MarkFlagsMutuallyExclusive("text", "md", "json")

	// other flags
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress progress messages")
	rootCmd.PersistentFlags().BoolP("debug", "D", false, "Enable debug logging")
	_ = rootCmd.PersistentFlags().MarkHidden("debug")

	// counting unit flags
	statsCmd.Flags().Bool("tokens", false, "Count model tokens (default)")
	statsCmd.Flags().Bool("words", false, "Count words")
	statsCmd.Flags().Bool("chars", false, "Count characters")

	// counting unit flags are mutually exclusive
	statsCmd.MarkFlagsMutuallyExclusive("tokens", "words", "chars")

	rootCmd.AddCommand(statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
