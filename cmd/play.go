package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Take the lash style quiz",
	Long: `Take the lash style quiz in the terminal.

Every category needs at least two enabled photos in the catalog. Completed
quizzes are saved to the result log.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	playCmd.Flags().String("metrics-file", "", "Write Prometheus metrics for the played sessions to this file on exit")
}
