package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loctree/loctree-go/internal/output"
	"github.com/loctree/loctree-go/pkg/types"
)

var failOnMissingHandlers bool

var commandsCmd = &cobra.Command{
	Use:   "commands [directory]",
	Short: "Report frontend/backend command coverage (C7)",
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
			if err := enc.Encode(rep.Commands); err != nil {
				return err
			}
		} else {
			applyColorMode()
			if len(rep.Commands) == 0 {
				fmt.Println("no commands found")
			} else {
				output.RenderCommands(os.Stdout, rep.Commands, verbose)
			}
		}

		missing := false
		for _, c := range rep.Commands {
			if c.Status == types.CommandMissingHandler {
				missing = true
				break
			}
		}
		return exitOnFound(failOnMissingHandlers, missing)
	},
}

func init() {
	commandsCmd.Flags().BoolVar(&failOnMissingHandlers, "fail-on-missing-handlers", false, "exit with code 2 if any command lacks a backend handler")
	rootCmd.AddCommand(commandsCmd)
}
