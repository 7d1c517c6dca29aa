package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "insights",
	Short: "Objective insight scoring and validation engine",
	Long: `insights scores extracted customer-interview insights, computes
validation confidence, compares customer segments, and detects patterns
and outliers across a corpus.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
