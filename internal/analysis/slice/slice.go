// Package slice implements the Core/Deps/Consumers context extractor
// (C10, §4.10): the holographic neighborhood of a target file, bounded to a
// configurable depth, closed under "the imports of every included file at
// depth <= K are present".
package slice

import (
	"sort"

	"github.com/loctree/loctree-go/pkg/types"
)

// Unlimited marks a slice extraction with no depth bound.
const Unlimited = -1

// Extract builds the Core/Deps/Consumers layers around target, walking the
// graph's import edges for Deps and the reverse edges for Consumers, each up
// to depth K (Unlimited for no bound). Consumers are included only when
// withConsumers is set, per §4.10's "optional" layer.
func Extract(g *types.ModuleGraph, target string, depth int, withConsumers bool) types.Slice {
	s := types.Slice{Target: target, Depth: depth}
	s.Core = []types.SliceLayerFile{fileEntry(g, target)}

	depsSet := bfs(g, target, depth, forward)
	delete(depsSet, target)
	s.Deps = toLayerFiles(g, depsSet)

	if withConsumers {
		consumersSet := bfs(g, target, depth, backward)
		delete(consumersSet, target)
		s.Consumers = toLayerFiles(g, consumersSet)
	}

	return s
}

type direction int

const (
	forward direction = iota
	backward
)

// bfs walks the graph from start up to maxDepth hops (Unlimited for no
// bound), following import/reexport/dynamic edges in the given direction.
func bfs(g *types.ModuleGraph, start string, maxDepth int, dir direction) map[string]bool {
	visited := map[string]bool{start: true}
	frontier := []string{start}

	for level := 0; len(frontier) > 0 && (maxDepth == Unlimited || level < maxDepth); level++ {
		var next []string
		for _, node := range frontier {
			for _, neighbor := range neighbors(g, node, dir) {
				if neighbor == "" || visited[neighbor] {
					continue
				}
				visited[neighbor] = true
				next = append(next, neighbor)
			}
		}
		frontier = next
	}

	return visited
}

func neighbors(g *types.ModuleGraph, node string, dir direction) []string {
	var edges []types.GraphEdge
	if dir == forward {
		edges = g.EdgesFrom(node)
	} else {
		edges = g.EdgesTo(node)
	}

	out := make([]string, 0, len(edges))
	for _, e := range edges {
		if dir == forward {
			out = append(out, e.To)
		} else {
			out = append(out, e.From)
		}
	}
	return out
}

func fileEntry(g *types.ModuleGraph, path string) types.SliceLayerFile {
	loc := 0
	if fa, ok := g.Files[path]; ok {
		loc = fa.LOC
	}
	return types.SliceLayerFile{File: path, LOC: loc}
}

func toLayerFiles(g *types.ModuleGraph, set map[string]bool) []types.SliceLayerFile {
	paths := make([]string, 0, len(set))
	for p := range set {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	out := make([]types.SliceLayerFile, len(paths))
	for i, p := range paths {
		out[i] = fileEntry(g, p)
	}
	return out
}
