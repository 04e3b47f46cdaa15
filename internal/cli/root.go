// Package cli implements the Kopalnia command-line interface using Cobra.
// Each subcommand maps to one engine operation (serve, complete, claim, etc.).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kopalnia",
	Short: "Kopalnia Wiedzy — progression engine for young miners of knowledge",
	Long: `Kopalnia Wiedzy is a progression and rewards engine.
It tracks task completions, streaks, unlocks and class rankings,
and serves them over a JSON API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
