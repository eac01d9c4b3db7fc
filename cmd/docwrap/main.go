package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"docwrap/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "docwrap [flags] PATH...",
	Short: "Rewrap overlong Python docstrings and comments",
	Long: `docwrap rewraps overlong lines in Python docstrings and block comments
to a maximum width and normalizes docstring quotes to """.`,
	Args:          cobra.MinimumNArgs(1),
	RunE:          runRewrap,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")

	if err := rootCmd.Execute(); err != nil {
		// errRunFailed means the diagnostics are already on screen.
		if !errors.Is(err, errRunFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
