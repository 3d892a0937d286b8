package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loctree/loctree-go/internal/query"
)

var traceCmd = &cobra.Command{
	Use:   "trace <file> [directory]",
	Short: "List every file that directly imports the target (C12 who-imports)",
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

		importers := query.WhoImports(rep.Snapshot.Graph(), args[0])
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(importers)
		}
		if len(importers) == 0 {
			fmt.Printf("%s: no importers\n", args[0])
			return nil
		}
		for _, loc := range importers {
			fmt.Println(loc.File)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(traceCmd)
}
