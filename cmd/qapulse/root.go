package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	qalog "github.com/davetashner/qapulse/internal/log"
)

// Global flag values.
var (
	verbose bool
	quiet   bool
	noColor bool
)

// rootCmd is the base command for qapulse.
var rootCmd = &cobra.Command{
	Use:   "qapulse",
	Short: "Summarize QA results published as spreadsheet tabs",
	Long: `qapulse fetches QA result tabs published as CSV, filters them by
platform, build and date range, and reports headline totals, pass rates,
result distribution, build trends and issue breakdowns.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		qalog.Setup(verbose, quiet)
		if noColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
