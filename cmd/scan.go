package cmd

import (
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan [directory]",
	Short: "Scan a project and persist its snapshot",
	Long: `Scan walks the project tree, lexes every recognized source file, resolves
imports, builds the module graph, runs every structural analyzer, and
persists the result under <directory>/.loctree/snapshot.json.

Supported languages: TypeScript/JavaScript, Rust, Python, Go, Dart, CSS,
and Single-File Components (.svelte, .vue). Defaults to the current
directory when none is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := targetDir(args)
		if err != nil {
			return err
		}
		rep, err := loadReport(dir)
		if err != nil {
			return err
		}
		render(rep)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
