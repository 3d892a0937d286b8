package graph

import (
	"testing"

	"github.com/loctree/loctree-go/pkg/types"
)

func TestBuildDedupesAndPreservesUnresolved(t *testing.T) {
	a := types.NewFileAnalysis("a.ts", types.LangTS)
	a.Imports = []types.ImportEntry{
		{Source: "./b", ResolvedPath: "b.ts"},
		{Source: "./b", ResolvedPath: "b.ts"}, // duplicate edge
		{Source: "left-pad", Resolution: types.ResolutionUnknown},
	}
	b := types.NewFileAnalysis("b.ts", types.LangTS)

	g := Build([]*types.FileAnalysis{a, b})

	if len(g.Edges) != 2 {
		t.Fatalf("expected 2 deduplicated edges, got %d: %+v", len(g.Edges), g.Edges)
	}
	foundUnresolved := false
	for _, e := range g.Edges {
		if e.From == "a.ts" && e.To == "" {
			foundUnresolved = true
		}
	}
	if !foundUnresolved {
		t.Errorf("expected an unresolved edge with empty target, got %+v", g.Edges)
	}
	if len(g.Files) != 2 {
		t.Errorf("expected 2 files in graph, got %d", len(g.Files))
	}
}
