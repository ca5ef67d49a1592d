package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lashpop/stylematch/internal/logging"
	"github.com/lashpop/stylematch/internal/metrics"
	engine "github.com/lashpop/stylematch/internal/quiz"
	"github.com/lashpop/stylematch/internal/simulate"
	"github.com/lashpop/stylematch/internal/style"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play many seeded quizzes with a scripted chooser",
	Long: `Play many quizzes without a terminal UI and report how they end.

Choosers:
  random            pick a side at random
  favor:<style>     pick <style> whenever it is shown
  spectrum:<style>  pick the side closest to <style> on the natural-to-dramatic spectrum

Runs use seeds --seed, --seed+1, ... so a report can be reproduced exactly.`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().Int("runs", 1000, "Number of quizzes to play")
	simulateCmd.Flags().Int("workers", 0, "Concurrent sessions (0 = GOMAXPROCS)")
	simulateCmd.Flags().Uint64("seed", 0, "Base seed (0 = configured seed, or 1)")
	simulateCmd.Flags().String("chooser", "random", "Chooser strategy")
	simulateCmd.Flags().String("q1", "", "Fixed answer to the routine question (default: random per run)")
	simulateCmd.Flags().String("q2", "", "Fixed answer to the lash look question (default: random per run)")
	simulateCmd.Flags().Int("synthetic", 0, "Use N generated photos per style instead of the catalog")
	simulateCmd.Flags().Bool("json", false, "Print the report as JSON")
	simulateCmd.Flags().String("metrics-file", "", "Write Prometheus metrics to this file")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	runs, _ := cmd.Flags().GetInt("runs")
	workers, _ := cmd.Flags().GetInt("workers")
	seed, _ := cmd.Flags().GetUint64("seed")
	chooserSpec, _ := cmd.Flags().GetString("chooser")
	q1, _ := cmd.Flags().GetString("q1")
	q2, _ := cmd.Flags().GetString("q2")
	synthetic, _ := cmd.Flags().GetInt("synthetic")
	asJSON, _ := cmd.Flags().GetBool("json")
	metricsFile, _ := cmd.Flags().GetString("metrics-file")

	chooser, err := simulate.ParseChooser(chooserSpec)
	if err != nil {
		return err
	}
	rules, err := cfg.QuizRules()
	if err != nil {
		return err
	}
	if seed == 0 {
		seed = cfg.Quiz.Seed
	}
	if seed == 0 {
		seed = 1
	}

	var pool engine.PhotoPool
	if synthetic > 0 {
		pool = syntheticPool(rules.Categories, synthetic)
	} else {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		if pool, err = st.Photos().Pool(cmd.Context()); err != nil {
			return fmt.Errorf("load photo catalog: %w", err)
		}
	}

	rec := metrics.NewRecorder(rules.MaxRounds)
	results, err := simulate.Run(cmd.Context(), simulate.Options{
		Runs:     runs,
		Workers:  workers,
		Seed:     seed,
		Rules:    rules,
		Pool:     pool,
		Chooser:  chooser,
		Q1:       engine.AnswerKey(q1),
		Q2:       engine.AnswerKey(q2),
		Observer: rec,
		Logger:   logging.Logger(),
	})
	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}

	report := simulate.Summarize(chooser, seed, results)
	if asJSON {
		err = report.WriteJSON(os.Stdout)
	} else {
		err = report.WriteText(os.Stdout)
	}
	if err != nil {
		return err
	}

	if metricsFile != "" {
		if err := rec.WriteTextfile(metricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		logging.Info().Str("path", metricsFile).Msg("metrics written")
	}
	return nil
}

// syntheticPool builds n enabled placeholder photos per category.
func syntheticPool(categories []style.Category, n int) engine.StaticPool {
	pool := make(engine.StaticPool, len(categories))
	for _, c := range categories {
		for i := 0; i < n; i++ {
			pool[c] = append(pool[c], engine.Photo{
				ID:        fmt.Sprintf("synthetic-%s-%d", c, i),
				Category:  c,
				Enabled:   true,
				FilePath:  fmt.Sprintf("synthetic/%s/%d.jpg", c, i),
				SortOrder: i + 1,
			})
		}
	}
	return pool
}
