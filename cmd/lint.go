package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loctree/loctree-go/internal/output"
)

var lintFail bool

var lintCmd = &cobra.Command{
	Use:   "lint [directory]",
	Short: "Run every analyzer and report whether any CI-gating issue exists",
	Long: `lint is the composite CI gate: it runs a full scan and reports cycles,
dead exports, missing/unused/unregistered command handlers, and ghost
emits and orphan listeners together. With --fail, exit code 2 is returned
if any of them is found; event races, twins and crowds are reported but do
not trip the gate (§6 "lint --fail").`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := targetDir(args)
		if err != nil {
			return err
		}
		rep, err := loadReport(dir)
		if err != nil {
			return err
		}

		if jsonOutput {
			return output.RenderJSON(os.Stdout, output.BuildJSONReport("", rep))
		}
		applyColorMode()
		output.RenderReport(os.Stdout, rep, verbose)

		issue := hasGateIssue(rep) || len(rep.DeadExports) > 0
		if !issue {
			fmt.Println("lint: clean")
		}
		return exitOnFound(lintFail, issue)
	},
}

func init() {
	lintCmd.Flags().BoolVar(&lintFail, "fail", false, "exit with code 2 if any gating finding is present")
	rootCmd.AddCommand(lintCmd)
}
