// Package output renders a scan Report to the terminal, JSON, and SARIF.
//
// Terminal rendering uses the same hierarchical, color-coded style as the
// teacher's scoring display: bold section headers, a wide separator rule,
// and confidence-driven coloring (green=certain is wrong headline color for
// a defect, so Certain findings are red, High amber, Smell dim) instead of
// the teacher's score-threshold coloring. NO_COLOR and non-TTY output both
// fall back to fatih/color's automatic detection.
package output

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"github.com/loctree/loctree-go/internal/pipeline"
	"github.com/loctree/loctree-go/pkg/types"
)

const separator = "────────────────────────────────────────"

// confidenceColor maps a finding's confidence to a display color: Certain
// defects are the most actionable (red), High is amber, Smell is dim since
// it may be a false positive (§1 "admits false positives").
func confidenceColor(c types.Confidence) *color.Color {
	switch c {
	case types.ConfidenceCertain:
		return color.New(color.FgRed)
	case types.ConfidenceHigh:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgHiBlack)
	}
}

// RenderReport prints every section of a scan Report to w. Empty sections
// are omitted; verbose additionally lists call/handler sites under each
// command and event finding.
func RenderReport(w io.Writer, rep *pipeline.Report, verbose bool) {
	bold := color.New(color.Bold)

	bold.Fprintf(w, "loctree scan: %d files, %d edges\n", len(rep.Snapshot.FileAnalyses), len(rep.Snapshot.Edges))
	fmt.Fprintln(w, separator)

	RenderCycles(w, rep.Cycles)
	RenderDeadExports(w, rep.DeadExports)
	RenderCommands(w, rep.Commands, verbose)
	RenderEvents(w, rep.Events, verbose)
	RenderTwins(w, rep.Twins)
	RenderCrowds(w, rep.Crowds)
}

// RenderCycles prints the import-cycle section (§4.5).
func RenderCycles(w io.Writer, cycles []types.Cycle) {
	if len(cycles) == 0 {
		return
	}
	bold := color.New(color.Bold)
	fmt.Fprintln(w)
	bold.Fprintf(w, "Import cycles (%d)\n", len(cycles))
	fmt.Fprintln(w, separator)
	for _, c := range cycles {
		tag := ""
		if c.Lazy {
			tag = " [lazy]"
		}
		color.New(color.FgRed).Fprintf(w, "  %s%s\n", joinCycle(c.Nodes), tag)
	}
}

// RenderDeadExports prints the dead-export section (§4.6).
func RenderDeadExports(w io.Writer, dead []types.DeadExport) {
	if len(dead) == 0 {
		return
	}
	bold := color.New(color.Bold)
	fmt.Fprintln(w)
	bold.Fprintf(w, "Dead exports (%d)\n", len(dead))
	fmt.Fprintln(w, separator)
	for _, d := range dead {
		c := confidenceColor(d.Confidence)
		suffix := ""
		if d.Shadow {
			suffix = fmt.Sprintf("  (shadowed by %s)", d.ShadowedBy)
		}
		c.Fprintf(w, "  %s  %s:%d  [%s]%s\n", d.Symbol, d.File, d.Line, d.Confidence, suffix)
	}
}

// RenderCommands prints the command-coverage section (§4.7).
func RenderCommands(w io.Writer, findings []types.CommandFinding, verbose bool) {
	if len(findings) == 0 {
		return
	}
	bold := color.New(color.Bold)
	fmt.Fprintln(w)
	bold.Fprintf(w, "Command coverage (%d)\n", len(findings))
	fmt.Fprintln(w, separator)
	for _, f := range findings {
		if f.Status == types.CommandOK {
			continue
		}
		c := confidenceColor(f.Confidence)
		c.Fprintf(w, "  %s  [%s]\n", f.Name, f.Status)
		if verbose {
			for _, s := range f.CallSites {
				fmt.Fprintf(w, "    call:    %s:%d\n", s.File, s.Line)
			}
			for _, s := range f.Handlers {
				fmt.Fprintf(w, "    handler: %s:%d\n", s.File, s.Line)
			}
		}
	}
}

// RenderEvents prints the event-flow section (§4.8).
func RenderEvents(w io.Writer, findings []types.EventFinding, verbose bool) {
	if len(findings) == 0 {
		return
	}
	bold := color.New(color.Bold)
	fmt.Fprintln(w)
	bold.Fprintf(w, "Event flow (%d)\n", len(findings))
	fmt.Fprintln(w, separator)
	for _, f := range findings {
		c := confidenceColor(f.Confidence)
		c.Fprintf(w, "  %s  [%s, %s]\n", f.Name, f.Kind, f.Confidence)
		if verbose {
			for _, s := range f.Sites {
				fmt.Fprintf(w, "    %s:%d\n", s.File, s.Line)
			}
		}
	}
}

// RenderTwins prints the twin-export section (§4.9).
func RenderTwins(w io.Writer, twins []types.Twin) {
	if len(twins) == 0 {
		return
	}
	bold := color.New(color.Bold)
	fmt.Fprintln(w)
	bold.Fprintf(w, "Twins (%d)\n", len(twins))
	fmt.Fprintln(w, separator)
	for _, t := range twins {
		files := make([]string, len(t.Locations))
		for i, loc := range t.Locations {
			files[i] = loc.File
		}
		sort.Strings(files)
		fmt.Fprintf(w, "  %s  (%d files)\n", t.Name, len(files))
		for _, f := range files {
			fmt.Fprintf(w, "    %s\n", f)
		}
	}
}

// RenderCrowds prints the crowd/cluster section (§4.9).
func RenderCrowds(w io.Writer, crowds []types.Crowd) {
	if len(crowds) == 0 {
		return
	}
	bold := color.New(color.Bold)
	fmt.Fprintln(w)
	bold.Fprintf(w, "Crowds (%d)\n", len(crowds))
	fmt.Fprintln(w, separator)
	for _, cr := range crowds {
		fmt.Fprintf(w, "  %s  score=%d  issues=%d\n", cr.Pattern, cr.Score, len(cr.Issues))
		for _, m := range cr.Members {
			fmt.Fprintf(w, "    %-40s importers=%d\n", m.File, m.ImporterCount)
		}
	}
}

// joinCycle formats a dependency cycle as "a -> b -> c -> a".
func joinCycle(nodes []string) string {
	if len(nodes) == 0 {
		return ""
	}
	result := ""
	for i, n := range nodes {
		if i > 0 {
			result += " -> "
		}
		result += n
	}
	return result + " -> " + nodes[0]
}
