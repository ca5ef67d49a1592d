package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	engine "github.com/lashpop/stylematch/internal/quiz"
	"github.com/lashpop/stylematch/internal/style"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Inspect the log of completed quizzes",
}

var resultsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the most recent results",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		records, err := st.Results().Recent(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("list results: %w", err)
		}

		fmt.Printf("%5s  %-16s  %-12s  %-10s  %6s  %6s  %s\n",
			"ID", "When", "Style", "Reason", "Rounds", "Margin", "Answers")
		fmt.Println(strings.Repeat("─", 80))
		for _, r := range records {
			fmt.Printf("%5d  %-16s  %-12s  %-10s  %6d  %6d  %s/%s\n",
				r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Result.DisplayName(),
				r.Reason, r.Rounds, r.Margin, r.Q1, r.Q2)
		}
		fmt.Printf("\n%d results\n", len(records))
		return nil
	},
}

var resultsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how often each style was matched",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := st.Results().Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("result stats: %w", err)
		}
		if stats.Total == 0 {
			fmt.Println("No completed quizzes yet.")
			return nil
		}

		fmt.Printf("%d completed quizzes, %.1f rounds on average\n\n", stats.Total, stats.AvgRounds)
		fmt.Printf("%-12s  %5s  %6s\n", "Style", "Count", "Share")
		fmt.Println(strings.Repeat("─", 27))
		for _, c := range style.All() {
			n := stats.ByResult[c]
			fmt.Printf("%-12s  %5d  %5.1f%%\n", c.DisplayName(), n, 100*float64(n)/float64(stats.Total))
		}
		fmt.Println()
		for _, reason := range []engine.StopReason{engine.StopEarly, engine.StopMaxRounds} {
			fmt.Printf("%-12s  %5d\n", reason, stats.ByReason[reason])
		}
		return nil
	},
}

func init() {
	resultsListCmd.Flags().Int("limit", 20, "Number of results to show")

	resultsCmd.AddCommand(resultsListCmd)
	resultsCmd.AddCommand(resultsStatsCmd)
}
