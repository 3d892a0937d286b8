package slice

import (
	"testing"

	"github.com/loctree/loctree-go/pkg/types"
)

func buildChainGraph() *types.ModuleGraph {
	g := types.NewModuleGraph()
	g.Files["a.ts"] = &types.FileAnalysis{Path: "a.ts", LOC: 10}
	g.Files["b.ts"] = &types.FileAnalysis{Path: "b.ts", LOC: 20}
	g.Files["c.ts"] = &types.FileAnalysis{Path: "c.ts", LOC: 30}
	g.Files["consumer.ts"] = &types.FileAnalysis{Path: "consumer.ts", LOC: 5}

	g.AddEdge("a.ts", "b.ts", types.EdgeImport)
	g.AddEdge("b.ts", "c.ts", types.EdgeImport)
	g.AddEdge("consumer.ts", "a.ts", types.EdgeImport)
	g.SortEdges()
	return g
}

func TestExtractUnlimitedDepsFollowsFullChain(t *testing.T) {
	g := buildChainGraph()
	s := Extract(g, "a.ts", Unlimited, false)

	if len(s.Core) != 1 || s.Core[0].File != "a.ts" || s.Core[0].LOC != 10 {
		t.Fatalf("unexpected core: %+v", s.Core)
	}
	if len(s.Deps) != 2 {
		t.Fatalf("expected b.ts and c.ts in deps, got %+v", s.Deps)
	}
	if s.Deps[0].File != "b.ts" || s.Deps[1].File != "c.ts" {
		t.Fatalf("expected sorted deps b.ts, c.ts, got %+v", s.Deps)
	}
}

func TestExtractDepthOneStopsAtFirstHop(t *testing.T) {
	g := buildChainGraph()
	s := Extract(g, "a.ts", 1, false)

	if len(s.Deps) != 1 || s.Deps[0].File != "b.ts" {
		t.Fatalf("expected only b.ts at depth 1, got %+v", s.Deps)
	}
}

func TestExtractConsumersOptional(t *testing.T) {
	g := buildChainGraph()

	without := Extract(g, "a.ts", Unlimited, false)
	if without.Consumers != nil {
		t.Fatalf("expected no consumers when not requested, got %+v", without.Consumers)
	}

	with := Extract(g, "a.ts", Unlimited, true)
	if len(with.Consumers) != 1 || with.Consumers[0].File != "consumer.ts" {
		t.Fatalf("expected consumer.ts in consumers, got %+v", with.Consumers)
	}
}
