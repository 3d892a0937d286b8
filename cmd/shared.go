package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/loctree/loctree-go/internal/config"
	"github.com/loctree/loctree-go/internal/output"
	"github.com/loctree/loctree-go/internal/pipeline"
	"github.com/loctree/loctree-go/internal/snapshot"
	"github.com/loctree/loctree-go/internal/suppress"
	"github.com/loctree/loctree-go/pkg/types"
	"github.com/loctree/loctree-go/pkg/version"
)

// targetDir resolves the project directory from an optional positional
// argument, defaulting to the current working directory.
func targetDir(args []string) (string, error) {
	if len(args) == 0 {
		return os.Getwd()
	}
	return filepath.Abs(args[0])
}

// applyColorMode honors the global --color flag before any rendering runs.
func applyColorMode() {
	switch colorMode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}
}

// loadReport produces a Report for dir, honoring the global --fresh,
// --no-scan, and --fail-stale flags (§6, §4.11).
func loadReport(dir string) (*pipeline.Report, error) {
	if noScan {
		return reportFromPersistedSnapshot(dir)
	}

	snap, err := snapshot.Load(dir)
	if err != nil {
		return nil, &types.ExitError{Code: 1, Message: err.Error()}
	}
	if failStale && snap != nil && snap.Git != nil {
		if current := currentGitHead(dir); current != "" && current != snap.Git.Commit {
			return nil, &types.ExitError{Code: 1, Message: "snapshot is stale: stored VCS HEAD differs from current HEAD (rerun with --fresh)"}
		}
	}

	rep, err := pipeline.Run(dir, pipeline.Options{Fresh: fresh})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	return rep, nil
}

// reportFromPersistedSnapshot reanalyzes a previously saved snapshot without
// re-walking or re-lexing the project tree, the `--no-scan` path (§6). The
// snapshot, suppressions and config are still read from disk.
func reportFromPersistedSnapshot(dir string) (*pipeline.Report, error) {
	snap, err := snapshot.Load(dir)
	if err != nil {
		return nil, &types.ExitError{Code: 1, Message: err.Error()}
	}
	if snap == nil {
		return nil, &types.ExitError{Code: 1, Message: fmt.Sprintf("no snapshot found under %s/.loctree (run without --no-scan first)", dir)}
	}

	suppressions, err := suppress.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("load suppressions: %w", err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v (using default config)\n", err)
	}
	return pipeline.Analyze(snap, suppressions, cfg), nil
}

// render prints a report as JSON or to the terminal depending on the global
// --json flag, applying --summary/--findings section gating.
func render(rep *pipeline.Report) {
	if jsonOutput {
		report := output.BuildJSONReport(version.Version, rep)
		if err := output.RenderJSON(os.Stdout, report); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		return
	}

	applyColorMode()
	if quiet {
		return
	}
	if summary && !findings {
		fmt.Printf("loctree scan: %d files, %d edges\n", len(rep.Snapshot.FileAnalyses), len(rep.Snapshot.Edges))
		return
	}
	if findings && !summary {
		output.RenderReport(os.Stdout, &pipeline.Report{
			Snapshot:    rep.Snapshot,
			Cycles:      rep.Cycles,
			DeadExports: rep.DeadExports,
			Commands:    rep.Commands,
			Events:      rep.Events,
			Twins:       rep.Twins,
			Crowds:      rep.Crowds,
		}, verbose)
		return
	}
	output.RenderReport(os.Stdout, rep, verbose)
}

// hasGateIssue reports whether rep contains any finding a CI gate would
// fail on, used by lint/audit's exit-code-2 path (§6, §7).
func hasGateIssue(rep *pipeline.Report) bool {
	for _, c := range rep.Commands {
		if c.Status != types.CommandOK {
			return true
		}
	}
	for _, e := range rep.Events {
		if e.Kind == types.EventGhostEmit || e.Kind == types.EventOrphanListener {
			return true
		}
	}
	return len(rep.Cycles) > 0
}

// exitOnFound returns a code-2 ExitError when gate is set and found is
// true, the shared shape of every subcommand's `--fail*` CI gate (§6, §7).
func exitOnFound(gate, found bool) error {
	if gate && found {
		return &types.ExitError{Code: 2}
	}
	return nil
}

// currentGitHead shells out for the working tree's current commit, mirroring
// the pipeline's own git probing; returns "" outside a repository.
func currentGitHead(dir string) string {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "HEAD")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
