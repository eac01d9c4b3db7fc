package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"docwrap/internal/config"
	"docwrap/internal/driver"
)

// errRunFailed signals a run that already reported its own diagnostics.
// main exits nonzero without printing anything further for it.
var errRunFailed = errors.New("rewrap failed")

func init() {
	rootCmd.Flags().Int("max-doc-length", 79, "maximum docstring and comment line width")
	rootCmd.Flags().Bool("force-triple-quotes", false, "rewrite every docstring delimiter to \"\"\" even when it fits")
	rootCmd.Flags().Bool("skip-comments", false, "leave block comments alone")
	rootCmd.Flags().Bool("skip-docstrings", false, "leave docstrings alone")
	rootCmd.Flags().Bool("no-gitignore", false, "process files git would ignore")
	rootCmd.Flags().Bool("check", false, "report files that would change without writing them")
	rootCmd.Flags().Int("jobs", 0, "number of files to process in parallel (0 = number of CPUs)")
	rootCmd.Flags().Bool("no-cache", false, "disable the clean-file cache")
	rootCmd.Flags().String("ui", "auto", "progress display (auto|on|off)")
}

func runRewrap(cmd *cobra.Command, args []string) error {
	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}

	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	useUI, err := progressEnabled(uiFlag, quiet)
	if err != nil {
		return err
	}

	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
	color.NoColor = !useColor

	var summary *driver.Summary
	if useUI {
		summary, err = runWithUI(cmd.Context(), "rewrapping", args, opts)
	} else {
		summary, err = driver.Run(cmd.Context(), args, opts)
	}
	if err != nil {
		return err
	}

	return reportSummary(cmd, summary, quiet, opts.Check)
}

// progressEnabled resolves the --ui flag into a yes/no for the live
// progress display. "auto" means a terminal on stdout, and --quiet always
// wins over the display.
func progressEnabled(value string, quiet bool) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return !quiet && isTerminal(os.Stdout), nil
	case "on":
		return !quiet, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// buildOptions merges docwrap.toml defaults with command-line flags.
// Flags the user actually set win; otherwise the manifest value applies.
func buildOptions(cmd *cobra.Command) (driver.Options, error) {
	var opts driver.Options

	maxLength, err := cmd.Flags().GetInt("max-doc-length")
	if err != nil {
		return opts, err
	}
	forceTriple, err := cmd.Flags().GetBool("force-triple-quotes")
	if err != nil {
		return opts, err
	}
	skipComments, err := cmd.Flags().GetBool("skip-comments")
	if err != nil {
		return opts, err
	}
	skipDocstrings, err := cmd.Flags().GetBool("skip-docstrings")
	if err != nil {
		return opts, err
	}
	noGitignore, err := cmd.Flags().GetBool("no-gitignore")
	if err != nil {
		return opts, err
	}
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return opts, err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return opts, err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return opts, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return opts, err
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return opts, err
	}
	if cfg.MaxDocLengthSet && !cmd.Flags().Changed("max-doc-length") {
		maxLength = cfg.MaxDocLength
	}
	if cfg.ForceTripleQuotesSet && !cmd.Flags().Changed("force-triple-quotes") {
		forceTriple = cfg.ForceTripleQuotes
	}
	if cfg.SkipCommentsSet && !cmd.Flags().Changed("skip-comments") {
		skipComments = cfg.SkipComments
	}
	if cfg.SkipDocstringsSet && !cmd.Flags().Changed("skip-docstrings") {
		skipDocstrings = cfg.SkipDocstrings
	}

	if maxLength <= 0 {
		return opts, fmt.Errorf("--max-doc-length must be positive, got %d", maxLength)
	}

	opts = driver.Options{
		MaxLength:         maxLength,
		ForceTripleQuotes: forceTriple,
		WrapComments:      !skipComments,
		WrapDocstrings:    !skipDocstrings,
		UseGitignore:      !noGitignore,
		Check:             check,
		Jobs:              jobs,
		NoCache:           noCache,
	}
	return opts, nil
}

func reportSummary(cmd *cobra.Command, summary *driver.Summary, quiet, check bool) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	modifiedColor := color.New(color.FgGreen)
	errorColor := color.New(color.FgRed)

	for _, res := range summary.Results {
		if res.Err != nil {
			fmt.Fprintf(errOut, "%s %s: %v\n", errorColor.Sprint("Error:"), res.Path, res.Err)
			continue
		}
		if res.Modified && !quiet {
			fmt.Fprintf(out, "%s %s\n", modifiedColor.Sprint("Modified:"), res.Path)
		}
	}

	if !quiet {
		fmt.Fprintf(out, "Processed %d files, modified %d files, %d errors.\n",
			summary.Processed, summary.Modified, summary.Errors)
	}

	// The per-file lines and the summary are the whole output contract;
	// the error only carries the exit code.
	if summary.Errors > 0 {
		return errRunFailed
	}
	if check && summary.Modified > 0 {
		return errRunFailed
	}
	return nil
}
