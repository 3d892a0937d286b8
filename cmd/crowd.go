package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loctree/loctree-go/internal/output"
)

var crowdCmd = &cobra.Command{
	Use:   "crowd [directory]",
	Short: "Cluster files around a shared concept and flag quality issues (C9)",
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
			return enc.Encode(rep.Crowds)
		}
		applyColorMode()
		if len(rep.Crowds) == 0 {
			fmt.Println("no crowds found")
			return nil
		}
		output.RenderCrowds(os.Stdout, rep.Crowds)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(crowdCmd)
}
