package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loctree/loctree-go/internal/output"
	"github.com/loctree/loctree-go/pkg/types"
)

var (
	failOnGhostEvents bool
	failOnRaces       bool
)

var eventsCmd = &cobra.Command{
	Use:   "events [directory]",
	Short: "Report event-flow coverage: ghost emits, orphan listeners, races (C8)",
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
			if err := enc.Encode(rep.Events); err != nil {
				return err
			}
		} else {
			applyColorMode()
			if len(rep.Events) == 0 {
				fmt.Println("no event-flow issues found")
			} else {
				output.RenderEvents(os.Stdout, rep.Events, verbose)
			}
		}

		ghost, race := false, false
		for _, e := range rep.Events {
			switch e.Kind {
			case types.EventGhostEmit, types.EventOrphanListener:
				ghost = true
			case types.EventRace:
				race = true
			}
		}
		if err := exitOnFound(failOnGhostEvents, ghost); err != nil {
			return err
		}
		return exitOnFound(failOnRaces, race)
	},
}

func init() {
	eventsCmd.Flags().BoolVar(&failOnGhostEvents, "fail-on-ghost-events", false, "exit with code 2 if any emitted event has no listener")
	eventsCmd.Flags().BoolVar(&failOnRaces, "fail-on-races", false, "exit with code 2 if any event race is found")
	rootCmd.AddCommand(eventsCmd)
}
