package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loctree/loctree-go/pkg/types"
)

type coverageSummary struct {
	Commands      int `json:"commands"`
	CommandsOK    int `json:"commands_ok"`
	EventsTotal   int `json:"events_total"`
	EventsHealthy int `json:"events_healthy"`
}

var coverageCmd = &cobra.Command{
	Use:   "coverage [directory]",
	Short: "Summarize frontend/backend command and event coverage as covered/total counts",
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

		s := coverageSummary{Commands: len(rep.Commands), EventsTotal: len(rep.Events)}
		for _, c := range rep.Commands {
			if c.Status == types.CommandOK {
				s.CommandsOK++
			}
		}
		for _, e := range rep.Events {
			if e.Kind != types.EventGhostEmit && e.Kind != types.EventOrphanListener {
				s.EventsHealthy++
			}
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(s)
		}
		fmt.Printf("commands: %d/%d covered\n", s.CommandsOK, s.Commands)
		fmt.Printf("events:   %d/%d healthy\n", s.EventsHealthy, s.EventsTotal)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(coverageCmd)
}
