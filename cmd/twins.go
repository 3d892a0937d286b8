package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loctree/loctree-go/internal/output"
)

var twinsCmd = &cobra.Command{
	Use:   "twins [directory]",
	Short: "Report exports sharing a name across distinct files (C9)",
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
			return enc.Encode(rep.Twins)
		}
		applyColorMode()
		if len(rep.Twins) == 0 {
			fmt.Println("no twins found")
			return nil
		}
		output.RenderTwins(os.Stdout, rep.Twins)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(twinsCmd)
}
