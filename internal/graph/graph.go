// Package graph builds the module graph (C4, §4.4) from a set of resolved
// FileAnalyses: one typed, deduplicated edge per import/reexport/dynamic
// relationship, plus empty-target edges for unresolved imports so that
// fan-out counts survive without polluting cycle analysis.
package graph

import (
	"github.com/loctree/loctree-go/pkg/types"
)

// Build aggregates analyses (already resolved by internal/resolve) into a
// ModuleGraph. Order of analyses does not affect the result: edges are
// deduplicated and sorted before return (§5 determinism).
func Build(analyses []*types.FileAnalysis) *types.ModuleGraph {
	g := types.NewModuleGraph()
	for _, fa := range analyses {
		g.Files[fa.Path] = fa
	}

	seen := make(map[types.GraphEdge]bool)
	add := func(from, to string, label types.EdgeLabel) {
		e := types.GraphEdge{From: from, To: to, Label: label}
		if seen[e] {
			return
		}
		seen[e] = true
		g.Edges = append(g.Edges, e)
	}

	for _, fa := range analyses {
		for _, imp := range fa.Imports {
			add(fa.Path, imp.ResolvedPath, types.EdgeImport)
		}
		for _, re := range fa.Reexports {
			add(fa.Path, re.ResolvedPath, types.EdgeReexport)
		}
		for _, dyn := range fa.DynamicImports {
			add(fa.Path, dyn.ResolvedPath, types.EdgeDynamic)
		}
	}

	g.SortEdges()
	return g
}
