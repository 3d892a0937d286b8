// Package query implements the read-only operations over a loaded snapshot
// (C12, §4.12): who-imports, where-symbol, component-of, impact, and diff.
package query

import (
	"sort"

	"github.com/loctree/loctree-go/pkg/types"
)

// WhoImports returns every file with an edge to target, in file order
// (§4.12). Graph edges carry no line, so each Location's Line is left zero.
func WhoImports(g *types.ModuleGraph, target string) []types.Location {
	var out []types.Location
	for _, e := range g.EdgesTo(target) {
		out = append(out, types.Location{File: e.From})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].File < out[j].File })
	return out
}

// WhereSymbol returns every file declaring an ExportSymbol or LocalSymbol
// with the given name (§4.12).
func WhereSymbol(g *types.ModuleGraph, name string) []types.Location {
	var out []types.Location
	for _, path := range g.SortedFileIDs() {
		fa := g.Files[path]
		for _, e := range fa.Exports {
			if e.Name == name {
				out = append(out, types.Location{File: path, Line: e.Line})
			}
		}
		for _, local := range fa.LocalSymbols {
			if local == name {
				out = append(out, types.Location{File: path})
			}
		}
	}
	return out
}

// ComponentOf returns the set of files in target's weakly-connected
// component: edges are treated as undirected for this purpose, since a
// "component" in the AI-context sense is a cluster of mutually relevant
// files regardless of import direction (§4.12).
func ComponentOf(g *types.ModuleGraph, target string) []string {
	adjacency := buildUndirectedAdjacency(g)

	visited := map[string]bool{target: true}
	queue := []string{target}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, neighbor := range adjacency[node] {
			if !visited[neighbor] {
				visited[neighbor] = true
				queue = append(queue, neighbor)
			}
		}
	}

	out := make([]string, 0, len(visited))
	for node := range visited {
		out = append(out, node)
	}
	sort.Strings(out)
	return out
}

func buildUndirectedAdjacency(g *types.ModuleGraph) map[string][]string {
	adjacency := make(map[string][]string)
	for _, e := range g.Edges {
		if e.From == "" || e.To == "" {
			continue
		}
		adjacency[e.From] = append(adjacency[e.From], e.To)
		adjacency[e.To] = append(adjacency[e.To], e.From)
	}
	return adjacency
}

// Impact returns the transitive closure of "who-imports" from target: every
// file reachable by walking import/reexport/dynamic edges backward, the
// blast radius of a change to target (§4.12).
func Impact(g *types.ModuleGraph, target string) []string {
	visited := map[string]bool{target: true}
	queue := []string{target}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, e := range g.EdgesTo(node) {
			if e.From == "" || visited[e.From] {
				continue
			}
			visited[e.From] = true
			queue = append(queue, e.From)
		}
	}
	delete(visited, target)

	out := make([]string, 0, len(visited))
	for node := range visited {
		out = append(out, node)
	}
	sort.Strings(out)
	return out
}

// Diff is the result of comparing two snapshots (§4.12 "diff --since").
type Diff struct {
	AddedFiles        []string
	RemovedFiles      []string
	AddedEdges        []types.GraphEdge
	RemovedEdges      []types.GraphEdge
	NewCycles         []types.Cycle
	RemovedCycles     []types.Cycle
	NewDeadExports    []types.DeadExport
	RemovedDeadExports []types.DeadExport
}

// CompareSnapshots computes the file/edge delta between an older and a
// newer snapshot, plus the cycle and dead-export deltas between the lists
// passed in. Those lists come from the caller (who has already re-run those
// analyzers over each snapshot's graph), since this package has no opinion
// on how they were produced.
func CompareSnapshots(older, newer *types.Snapshot, oldCycles, newCycles []types.Cycle, oldDead, newDead []types.DeadExport) Diff {
	d := Diff{
		AddedFiles:   setDiff(keysOf(newer.FileAnalyses), keysOf(older.FileAnalyses)),
		RemovedFiles: setDiff(keysOf(older.FileAnalyses), keysOf(newer.FileAnalyses)),
	}

	oldEdges := edgeSet(older.Edges)
	newEdges := edgeSet(newer.Edges)
	for e := range newEdges {
		if !oldEdges[e] {
			d.AddedEdges = append(d.AddedEdges, e)
		}
	}
	for e := range oldEdges {
		if !newEdges[e] {
			d.RemovedEdges = append(d.RemovedEdges, e)
		}
	}
	sortEdges(d.AddedEdges)
	sortEdges(d.RemovedEdges)

	oldCycleSet := cycleSet(oldCycles)
	newCycleSet := cycleSet(newCycles)
	for key, c := range newCycleSet {
		if _, ok := oldCycleSet[key]; !ok {
			d.NewCycles = append(d.NewCycles, c)
		}
	}
	for key, c := range oldCycleSet {
		if _, ok := newCycleSet[key]; !ok {
			d.RemovedCycles = append(d.RemovedCycles, c)
		}
	}

	oldDeadSet := deadExportSet(oldDead)
	newDeadSet := deadExportSet(newDead)
	for key, de := range newDeadSet {
		if _, ok := oldDeadSet[key]; !ok {
			d.NewDeadExports = append(d.NewDeadExports, de)
		}
	}
	for key, de := range oldDeadSet {
		if _, ok := newDeadSet[key]; !ok {
			d.RemovedDeadExports = append(d.RemovedDeadExports, de)
		}
	}

	return d
}

func keysOf(m map[string]*types.FileAnalysis) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func setDiff(a, b []string) []string {
	bSet := make(map[string]bool, len(b))
	for _, x := range b {
		bSet[x] = true
	}
	var out []string
	for _, x := range a {
		if !bSet[x] {
			out = append(out, x)
		}
	}
	sort.Strings(out)
	return out
}

func edgeSet(edges []types.GraphEdge) map[types.GraphEdge]bool {
	set := make(map[types.GraphEdge]bool, len(edges))
	for _, e := range edges {
		set[e] = true
	}
	return set
}

func sortEdges(edges []types.GraphEdge) {
	sort.Slice(edges, func(i, j int) bool {
		a, b := edges[i], edges[j]
		if a.From != b.From {
			return a.From < b.From
		}
		if a.To != b.To {
			return a.To < b.To
		}
		return a.Label < b.Label
	})
}

func cycleSet(cycles []types.Cycle) map[string]types.Cycle {
	set := make(map[string]types.Cycle, len(cycles))
	for _, c := range cycles {
		nodes := append([]string(nil), c.Nodes...)
		sort.Strings(nodes)
		key := ""
		for _, n := range nodes {
			key += n + "\x00"
		}
		set[key] = c
	}
	return set
}

func deadExportSet(dead []types.DeadExport) map[string]types.DeadExport {
	set := make(map[string]types.DeadExport, len(dead))
	for _, de := range dead {
		key := de.File + "\x00" + de.Symbol
		set[key] = de
	}
	return set
}
