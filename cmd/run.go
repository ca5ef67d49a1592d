package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lashpop/stylematch/internal/app"
	"github.com/lashpop/stylematch/internal/logging"
	"github.com/lashpop/stylematch/internal/metrics"
	engine "github.com/lashpop/stylematch/internal/quiz"
	"github.com/lashpop/stylematch/internal/screens/quiz"
)

// runApp opens the store, checks the photo catalog, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	rules, err := cfg.QuizRules()
	if err != nil {
		return err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	pool, err := st.Photos().Pool(ctx)
	if err != nil {
		return fmt.Errorf("load photo catalog: %w", err)
	}
	if err := engine.CheckPool(pool, rules.Categories); err != nil {
		var cfgErr *engine.ConfigurationError
		if errors.As(err, &cfgErr) {
			return fmt.Errorf("%w\n\nAdd photos with: stylematch photos add --category %s --file <path>", err, cfgErr.Category)
		}
		return err
	}

	// The TUI owns the terminal; logs go to a file beside the database.
	logFile, err := os.OpenFile(filepath.Join(filepath.Dir(dbPath), "stylematch.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: "json", Output: logFile})

	deps := quiz.Deps{
		Rules:   rules,
		Pool:    pool,
		Results: st.Results(),
		Logger:  logging.Component("quiz"),
	}
	if cfg.Quiz.Seed != 0 {
		deps.Rand = engine.NewRand(cfg.Quiz.Seed)
	}

	metricsFile, _ := cmd.Flags().GetString("metrics-file")
	var rec *metrics.Recorder
	if metricsFile != "" {
		rec = metrics.NewRecorder(rules.MaxRounds)
		deps.Observer = rec
	}

	if err := app.Run(deps); err != nil {
		return err
	}

	if rec != nil {
		if err := rec.WriteTextfile(metricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
