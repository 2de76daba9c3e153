// Package main provides the entry point for the solstat CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/solstat/solstat/cmd/solstat/commands"
	"github.com/solstat/solstat/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "solstat",
		Short: "Solstat - static risk analysis for Solana Rust programs",
		Long: `Solstat parses Rust contract sources, extracts arithmetic-safety,
control-flow, and cross-program-call signals per function, and rolls them
up into file and repository risk verdicts.

Commands:
  scan      Analyze a source tree or single file`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewScanCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "solstat %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
