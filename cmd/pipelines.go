package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
)

// pipelineEntry is one entry-point-rooted flow: a declared entry point
// alongside the commands and events reachable from the same file, a quick
// view of "what does invoking this actually trigger".
type pipelineEntry struct {
	File        string   `json:"file"`
	EntryPoints []string `json:"entry_points"`
	Commands    []string `json:"commands"`
	Events      []string `json:"events"`
}

var pipelinesCmd = &cobra.Command{
	Use:   "pipelines [directory]",
	Short: "List entry points and the commands/events each file's code reaches",
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

		var entries []pipelineEntry
		for path, fa := range rep.Snapshot.FileAnalyses {
			if len(fa.EntryPoints) == 0 && len(fa.CommandCalls) == 0 && len(fa.EventEmits) == 0 {
				continue
			}
			e := pipelineEntry{File: path, EntryPoints: fa.EntryPoints}
			for _, c := range fa.CommandCalls {
				e.Commands = append(e.Commands, c.Name)
			}
			for _, ev := range fa.EventEmits {
				e.Events = append(e.Events, ev.Name)
			}
			entries = append(entries, e)
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].File < entries[j].File })

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		}
		if len(entries) == 0 {
			fmt.Println("no entry-point pipelines found")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s  entry_points=%v commands=%v events=%v\n", e.File, e.EntryPoints, e.Commands, e.Events)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pipelinesCmd)
}
