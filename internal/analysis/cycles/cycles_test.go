package cycles

import (
	"testing"

	"github.com/loctree/loctree-go/pkg/types"
)

func edge(from, to string, label types.EdgeLabel) types.GraphEdge {
	return types.GraphEdge{From: from, To: to, Label: label}
}

func TestFindDetectsSimpleCycle(t *testing.T) {
	edges := []types.GraphEdge{
		edge("a", "b", types.EdgeImport),
		edge("b", "a", types.EdgeImport),
	}
	cycles := Find(edges)
	if len(cycles) != 1 || len(cycles[0].Nodes) != 2 {
		t.Fatalf("expected one 2-node cycle, got %+v", cycles)
	}
}

func TestFindDetectsSelfLoop(t *testing.T) {
	edges := []types.GraphEdge{edge("a", "a", types.EdgeImport)}
	cycles := Find(edges)
	if len(cycles) != 1 || len(cycles[0].Nodes) != 1 || cycles[0].Nodes[0] != "a" {
		t.Fatalf("expected a self-loop cycle, got %+v", cycles)
	}
}

func TestFindIgnoresUnresolvedAndNonStructuralEdges(t *testing.T) {
	edges := []types.GraphEdge{
		edge("a", "", types.EdgeImport),
		edge("a", "b", types.EdgeCommand),
	}
	if cycles := Find(edges); len(cycles) != 0 {
		t.Fatalf("expected no cycles, got %+v", cycles)
	}
}

func TestFindComplexCycleAndUnrelatedChain(t *testing.T) {
	edges := []types.GraphEdge{
		edge("a", "b", types.EdgeImport),
		edge("b", "c", types.EdgeImport),
		edge("c", "a", types.EdgeReexport),
		edge("d", "e", types.EdgeImport),
	}
	cycles := Find(edges)
	if len(cycles) != 1 || len(cycles[0].Nodes) != 3 {
		t.Fatalf("expected one 3-node cycle, got %+v", cycles)
	}
}
