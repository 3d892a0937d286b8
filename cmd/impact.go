package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loctree/loctree-go/internal/query"
)

var impactCmd = &cobra.Command{
	Use:   "impact <file> [directory]",
	Short: "Print the transitive blast radius of a change to a file (C12)",
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

		affected := query.Impact(rep.Snapshot.Graph(), args[0])
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(affected)
		}
		if len(affected) == 0 {
			fmt.Printf("%s: no transitive consumers\n", args[0])
			return nil
		}
		for _, f := range affected {
			fmt.Println(f)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(impactCmd)
}
