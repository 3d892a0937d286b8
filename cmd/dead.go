package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loctree/loctree-go/internal/output"
)

var deadFail bool

var deadCmd = &cobra.Command{
	Use:   "dead [directory]",
	Short: "Report exports with no known consumer (C6)",
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
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(rep.DeadExports); err != nil {
				return err
			}
		} else {
			applyColorMode()
			if len(rep.DeadExports) == 0 {
				fmt.Println("no dead exports found")
			} else {
				output.RenderDeadExports(os.Stdout, rep.DeadExports)
			}
		}
		return exitOnFound(deadFail, len(rep.DeadExports) > 0)
	},
}

func init() {
	deadCmd.Flags().BoolVar(&deadFail, "fail", false, "exit with code 2 if any dead export is found")
	rootCmd.AddCommand(deadCmd)
}
