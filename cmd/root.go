package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lashpop/stylematch/internal/config"
	"github.com/lashpop/stylematch/internal/logging"
	"github.com/lashpop/stylematch/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "stylematch",
	Short: "Find the lash extension style that suits you",
	Long: `stylematch runs the "find your look" quiz in the terminal: two quick
questions, then a few photo comparisons until one lash style wins.

It also manages the quiz photo catalog and the log of past results.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// cfg is resolved once per invocation by setup.
var cfg *config.Loaded

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STYLEMATCH_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides STYLEMATCH_CONFIG env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error, disabled")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: console or json")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(photosCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration and initializes logging. Flags win over the
// config file and environment.
func setup(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	loaded, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		loaded.Logging.Level = lvl
	}
	if format, _ := cmd.Flags().GetString("log-format"); format != "" {
		loaded.Logging.Format = format
	}
	initLogging(loaded.Logging)

	cfg = loaded
	logging.Debug().Str("config", loaded.Source).Msg("configuration loaded")
	return nil
}

func initLogging(lc config.LoggingConfig) {
	logging.Init(logging.Config{Level: lc.Level, Format: lc.Format})
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path, then STYLEMATCH_DB or the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DB.Path != "" {
		return cfg.DB.Path, store.EnsureDir(cfg.DB.Path)
	}
	return store.DefaultDBPath()
}

// openStore opens the database selected by resolveDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	logging.Debug().Str("path", dbPath).Msg("store opened")
	return st, nil
}
