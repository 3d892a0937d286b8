package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loctree/loctree-go/internal/query"
)

var findCmd = &cobra.Command{
	Use:   "find <symbol> [directory]",
	Short: "Locate every file declaring a symbol (C12 where-symbol)",
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

		locations := query.WhereSymbol(rep.Snapshot.Graph(), args[0])
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(locations)
		}
		if len(locations) == 0 {
			fmt.Printf("%s: not found\n", args[0])
			return nil
		}
		for _, loc := range locations {
			if loc.Line > 0 {
				fmt.Printf("%s:%d\n", loc.File, loc.Line)
			} else {
				fmt.Println(loc.File)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
}
