package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health [directory]",
	Short: "Print a one-line pass/fail summary across every analyzer",
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

		if !hasGateIssue(rep) && len(rep.DeadExports) == 0 && len(rep.Twins) == 0 {
			fmt.Println("healthy")
			return nil
		}
		fmt.Printf("issues: %d cycles, %d dead exports, %d command findings, %d event findings, %d twins\n",
			len(rep.Cycles), len(rep.DeadExports), len(rep.Commands), len(rep.Events), len(rep.Twins))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
