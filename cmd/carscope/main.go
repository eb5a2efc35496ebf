// Package main provides the carscope CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "carscope",
		Short: "Used-car inspection valuation",
		Long: `Carscope turns a vehicle inspection checklist, legal findings and a market
value into a repair estimate, a health score and a buy recommendation.`,
		Version: version,
	}

	rootCmd.AddCommand(
		newScoreCmd(),
		newTemplateCmd(),
		newSeverityCmd(),
		newGradeCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
