package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [directory]",
	Short: "Print the persisted snapshot's metadata",
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
		snap := rep.Snapshot

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"schema_name":    snap.SchemaName,
				"schema_version": snap.SchemaVersion,
				"generated_at":   snap.GeneratedAt,
				"files":          len(snap.FileAnalyses),
				"edges":          len(snap.Edges),
				"git":            snap.Git,
				"manifest":       snap.ManifestSummary,
			})
		}

		fmt.Printf("schema:       %s v%d\n", snap.SchemaName, snap.SchemaVersion)
		fmt.Printf("generated at: %s\n", snap.GeneratedAt)
		fmt.Printf("files:        %d\n", len(snap.FileAnalyses))
		fmt.Printf("edges:        %d\n", len(snap.Edges))
		if snap.Git != nil {
			fmt.Printf("git:          %s @ %s\n", snap.Git.Branch, snap.Git.Commit)
		}
		if snap.ManifestSummary != nil {
			fmt.Printf("manifest:     %s %s\n", snap.ManifestSummary.Name, snap.ManifestSummary.Version)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
