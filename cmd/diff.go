package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/spf13/cobra"

	"github.com/loctree/loctree-go/internal/analysis/cycles"
	"github.com/loctree/loctree-go/internal/analysis/deadexport"
	"github.com/loctree/loctree-go/internal/query"
	"github.com/loctree/loctree-go/internal/snapshot"
)

var diffSince string

var diffCmd = &cobra.Command{
	Use:   "diff [directory]",
	Short: "Compare the current snapshot against a prior VCS revision (C12)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := targetDir(args)
		if err != nil {
			return err
		}
		if diffSince == "" {
			return fmt.Errorf("diff requires --since <ref>")
		}

		rep, err := loadReport(dir)
		if err != nil {
			return err
		}

		priorData, err := gitShow(dir, diffSince, ".loctree/snapshot.json")
		if err != nil {
			return fmt.Errorf("resolve %s: %w", diffSince, err)
		}
		prior, err := snapshot.Parse(priorData)
		if err != nil {
			return fmt.Errorf("parse prior snapshot at %s: %w", diffSince, err)
		}

		priorGraph := prior.Graph()
		priorCycles := cycles.Find(priorGraph.Edges)
		priorDead := deadexport.Analyze(prior.FileAnalyses, nil, deadexport.Options{})

		d := query.CompareSnapshots(prior, rep.Snapshot, priorCycles, rep.Cycles, priorDead, rep.DeadExports)
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(d)
		}

		fmt.Printf("added files (%d):\n", len(d.AddedFiles))
		for _, f := range d.AddedFiles {
			fmt.Printf("  + %s\n", f)
		}
		fmt.Printf("removed files (%d):\n", len(d.RemovedFiles))
		for _, f := range d.RemovedFiles {
			fmt.Printf("  - %s\n", f)
		}
		fmt.Printf("new cycles: %d, removed cycles: %d\n", len(d.NewCycles), len(d.RemovedCycles))
		fmt.Printf("new dead exports: %d, removed dead exports: %d\n", len(d.NewDeadExports), len(d.RemovedDeadExports))
		return nil
	},
}

func init() {
	diffCmd.Flags().StringVar(&diffSince, "since", "", "VCS ref to diff the current snapshot against")
	rootCmd.AddCommand(diffCmd)
}

func gitShow(dir, ref, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	cmd := exec.CommandContext(ctx, "git", "show", fmt.Sprintf("%s:%s", ref, path))
	cmd.Dir = dir
	return cmd.Output()
}
