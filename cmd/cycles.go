package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loctree/loctree-go/internal/output"
)

var cyclesFail bool

var cyclesCmd = &cobra.Command{
	Use:   "cycles [directory]",
	Short: "Report import cycles (C5)",
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
			if err := enc.Encode(output.BuildJSONReport("", rep).Cycles); err != nil {
				return err
			}
		} else {
			applyColorMode()
			if len(rep.Cycles) == 0 {
				fmt.Println("no import cycles found")
			} else {
				output.RenderCycles(os.Stdout, rep.Cycles)
			}
		}
		return exitOnFound(cyclesFail, len(rep.Cycles) > 0)
	},
}

func init() {
	cyclesCmd.Flags().BoolVar(&cyclesFail, "fail", false, "exit with code 2 if any cycle is found")
	rootCmd.AddCommand(cyclesCmd)
}
