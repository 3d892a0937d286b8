package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	sliceext "github.com/loctree/loctree-go/internal/analysis/slice"
)

var (
	sliceDepth         int
	sliceWithConsumers bool
)

var sliceCmd = &cobra.Command{
	Use:   "slice <file> [directory]",
	Short: "Extract the Core/Deps/Consumers context around a file (C10)",
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

		s := sliceext.Extract(rep.Snapshot.Graph(), args[0], sliceDepth, sliceWithConsumers)
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(s)
		}

		fmt.Printf("core:\n")
		for _, f := range s.Core {
			fmt.Printf("  %s (%d loc)\n", f.File, f.LOC)
		}
		fmt.Printf("deps (%d):\n", len(s.Deps))
		for _, f := range s.Deps {
			fmt.Printf("  %s (%d loc)\n", f.File, f.LOC)
		}
		if sliceWithConsumers {
			fmt.Printf("consumers (%d):\n", len(s.Consumers))
			for _, f := range s.Consumers {
				fmt.Printf("  %s (%d loc)\n", f.File, f.LOC)
			}
		}
		return nil
	},
}

func init() {
	sliceCmd.Flags().IntVar(&sliceDepth, "depth", sliceext.Unlimited, "maximum hop distance for deps/consumers (-1 for unlimited)")
	sliceCmd.Flags().BoolVar(&sliceWithConsumers, "consumers", false, "include the consumers layer")
	rootCmd.AddCommand(sliceCmd)
}
