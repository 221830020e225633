package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/theirongolddev/iodda/internal/config"
	"github.com/theirongolddev/iodda/internal/logging"
	"github.com/theirongolddev/iodda/internal/pipeline"
	"github.com/theirongolddev/iodda/internal/source"
	"github.com/theirongolddev/iodda/internal/store"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagDataDir  string
	flagFiles    []string
	flagLocale   string
	flagQuiet    bool
	flagLogLevel string
	flagSample   bool
)

// Loaded once in PersistentPreRunE and shared by every command.
var (
	cfg    config.Config
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "iodda",
	Short:         "Budget and expense tracker",
	Long:          "Track budgets and their expenses: search, filter, and see what is left to spend.",
	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: preRun,
	RunE:              runList,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Directory of budget seed files (default from config)")
	rootCmd.PersistentFlags().StringSliceVarP(&flagFiles, "file", "f", nil, "Seed file to load (repeatable, overrides --data-dir)")
	rootCmd.PersistentFlags().StringVar(&flagLocale, "locale", "", "Locale for search and sort, e.g. en or fr-CA")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagSample, "sample", false, "Use the built-in sample budgets")
}

// preRun loads .env, the config file and the logger before any command runs.
func preRun(_ *cobra.Command, _ []string) error {
	if err := config.LoadEnv(); err != nil {
		return err
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}
	if flagLocale != "" {
		cfg.General.Locale = flagLocale
	} else {
		cfg.General.Locale = config.GetLocale(cfg)
	}
	cfg.Logging.Level = config.GetLogLevel(cfg)
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger = logging.Init(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Quiet:  flagQuiet,
	}, os.Stderr)
	return nil
}

// loadRepository is the shared data loading path used by all commands.
func loadRepository(ctx context.Context) (*store.Repository, error) {
	query, err := pipeline.ParseLocale(cfg.General.Locale)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("locale", query.Locale().String()).Msg("query locale")
	repo := store.New(store.WithQuery(query), store.WithLogger(logger))

	if flagSample {
		repo.SetBudgets(source.Sample())
		return repo, nil
	}

	progressFn := func(current, total int) {
		if flagQuiet {
			return
		}
		if current%50 == 0 || current == total {
			fmt.Fprintf(os.Stderr, "\r  Loading [%d/%d]", current, total)
		}
	}
	opts := source.LoadOptions{Progress: progressFn, Logger: &logger}

	var result *source.LoadResult
	if len(flagFiles) > 0 {
		result, err = source.Load(ctx, flagFiles, opts)
	} else {
		dir := flagDataDir
		if dir == "" {
			dir = config.GetDataDir(cfg)
		}
		result, err = source.LoadDir(ctx, dir, opts)
	}
	if err != nil {
		return nil, err
	}

	if !flagQuiet && result.TotalFiles > 0 {
		fmt.Fprintf(os.Stderr, "\r  Loaded %d budgets from %d files    \n", len(result.Budgets), result.ParsedFiles)
	}
	for _, ferr := range result.Errors {
		logger.Warn().Err(ferr).Msg("skipped seed file")
	}
	if result.FileErrors > 0 && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  %d files could not be parsed\n", result.FileErrors)
	}
	if result.Duplicates > 0 {
		logger.Warn().Int("count", result.Duplicates).Msg("dropped budgets with duplicate ids")
	}

	repo.SetBudgets(result.Budgets)
	return repo, nil
}

// currency returns the configured currency symbol.
func currency() string {
	if cfg.General.CurrencySymbol == "" {
		return "$"
	}
	return cfg.General.CurrencySymbol
}
