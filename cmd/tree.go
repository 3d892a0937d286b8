package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loctree/loctree-go/internal/query"
)

var treeCmd = &cobra.Command{
	Use:   "tree <file> [directory]",
	Short: "Print a file's weakly-connected component (C12 component-of)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := targetDir(args[1:])
		if err != nil {
			return err
		}
		rep, err := loadReport(dir)
		if err != nil {
			return err
		}

		component := query.ComponentOf(rep.Snapshot.Graph(), args[0])
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(component)
		}
		for _, f := range component {
			fmt.Println(f)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
