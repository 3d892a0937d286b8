// Package cmd implements loctree's command-line surface: a Cobra root
// command with one subcommand per operation in the snapshot pipeline and
// query layer, the CLI shell this module wraps around the analytic core
// (§6, explicitly "out of core scope" but carried as the ambient shell per
// the teacher's own cmd/ convention).
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loctree/loctree-go/pkg/types"
	"github.com/loctree/loctree-go/pkg/version"
)

var (
	jsonOutput bool
	quiet      bool
	verbose    bool
	colorMode  string
	fresh      bool
	noScan     bool
	failStale  bool
	findings   bool
	summary    bool
)

var rootCmd = &cobra.Command{
	Use:   "loctree",
	Short: "Build and query a polyglot project's import/export structure",
	Long: `loctree builds a persistent snapshot of a project's import/export
structure across TypeScript/JavaScript, Rust, Python, Go, Dart, CSS, and
Single-File Component sources, and answers structural questions about it:
which exports are unused, which modules form import cycles, which
frontend-invoked commands lack backend handlers, and which slice of the
codebase is relevant to a given file.

Running loctree with no subcommand scans the current directory.`,
	Version:      version.Version,
	SilenceUsage: true,
	Args:         cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return scanCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit JSON to stdout, diagnostics to stderr")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "include call/handler sites in findings output")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "colorize output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&fresh, "fresh", false, "discard any persisted snapshot and rescan from scratch")
	rootCmd.PersistentFlags().BoolVar(&noScan, "no-scan", false, "fail if no persisted snapshot exists rather than scanning")
	rootCmd.PersistentFlags().BoolVar(&failStale, "fail-stale", false, "fail if the stored VCS HEAD differs from the current one")
	rootCmd.PersistentFlags().BoolVar(&findings, "findings", false, "print only the findings section, not the snapshot summary")
	rootCmd.PersistentFlags().BoolVar(&summary, "summary", false, "print only the snapshot summary, not findings")
	rootCmd.SilenceErrors = true
}

// Execute runs the root command and exits with code 1 on error, or an
// ExitError's own Code for CI gate failures (§6 "Exit code... 2 when CI
// gates... detect the configured class of issue").
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *types.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintln(os.Stderr, exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
