package cmd

import (
	"github.com/spf13/cobra"
)

// queryCmd groups the C12 read-only graph queries under one parent, the
// generic "query" entry point named alongside the more convenient aliases
// tree/find/trace/impact (§6).
var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Read-only graph queries: who-imports, where-symbol, component-of, impact",
}

func init() {
	queryCmd.AddCommand(&cobra.Command{
		Use:   "who-imports <file> [directory]",
		Short: "Alias for trace",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  traceCmd.RunE,
	})
	queryCmd.AddCommand(&cobra.Command{
		Use:   "where-symbol <symbol> [directory]",
		Short: "Alias for find",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  findCmd.RunE,
	})
	queryCmd.AddCommand(&cobra.Command{
		Use:   "component-of <file> [directory]",
		Short: "Alias for tree",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  treeCmd.RunE,
	})
	queryCmd.AddCommand(&cobra.Command{
		Use:   "impact <file> [directory]",
		Short: "Alias for impact",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  impactCmd.RunE,
	})
	rootCmd.AddCommand(queryCmd)
}
