package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/loctree/loctree-go/internal/output"
)

var auditFail bool

var auditCmd = &cobra.Command{
	Use:   "audit [directory]",
	Short: "Run a full scan and print every finding section, the verbose report alias",
	Args:  cobra.MaximumNArgs(1),
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
			if err := output.RenderJSON(os.Stdout, output.BuildJSONReport("", rep)); err != nil {
				return err
			}
		} else {
			applyColorMode()
			output.RenderReport(os.Stdout, rep, true)
		}
		return exitOnFound(auditFail, hasGateIssue(rep) || len(rep.DeadExports) > 0)
	},
}

func init() {
	auditCmd.Flags().BoolVar(&auditFail, "fail", false, "exit with code 2 if any finding is present")
	rootCmd.AddCommand(auditCmd)
}
