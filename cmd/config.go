package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lashpop/stylematch/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := cfg.YAML()
		if err != nil {
			return fmt.Errorf("render config: %w", err)
		}
		source := cfg.Source
		if source == "" {
			source = "built-in defaults"
		}
		fmt.Printf("# source: %s\n", source)
		_, err = os.Stdout.Write(out)
		return err
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a config file against the schema and quiz rules",
	Args:  cobra.MaximumNArgs(1),
	// Validation must still run when the config it checks is broken.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		lc := config.Default().Logging
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			lc.Level = lvl
		}
		if format, _ := cmd.Flags().GetString("log-format"); format != "" {
			lc.Format = format
		}
		initLogging(lc)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			if err := config.ValidateFile(args[0]); err != nil {
				return err
			}
			fmt.Printf("%s is valid\n", args[0])
			return nil
		}

		path, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		if loaded.Source == "" {
			fmt.Println("No config file found; built-in defaults are valid.")
			return nil
		}
		fmt.Printf("%s is valid\n", loaded.Source)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
}
