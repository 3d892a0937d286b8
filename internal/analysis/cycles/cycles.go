// Package cycles implements the cycle analyzer (C5, §4.5): Tarjan's
// strongly-connected-components algorithm over the import+reexport edge
// set, keeping only SCCs that are true cycles.
package cycles

import (
	"sort"

	"github.com/loctree/loctree-go/pkg/types"
)

type tarjan struct {
	adj      map[string][]string
	index    int
	indices  map[string]int
	lowlinks map[string]int
	stack    []string
	onStack  map[string]bool
	sccs     [][]string
}

// Find runs Tarjan's SCC algorithm over edges labelled import or reexport,
// returning only the SCCs that are true cycles: size > 1, or a single node
// with a self-loop. Nodes are visited in sorted order for deterministic
// output (§5).
func Find(edges []types.GraphEdge) []types.Cycle {
	adj := make(map[string][]string)
	nodeSet := make(map[string]bool)

	for _, e := range edges {
		if e.From == "" || e.To == "" {
			continue
		}
		if e.Label != types.EdgeImport && e.Label != types.EdgeReexport {
			continue
		}
		adj[e.From] = append(adj[e.From], e.To)
		nodeSet[e.From] = true
		nodeSet[e.To] = true
	}

	nodes := make([]string, 0, len(nodeSet))
	for n := range nodeSet {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes)

	t := &tarjan{
		adj:      adj,
		indices:  make(map[string]int),
		lowlinks: make(map[string]int),
		onStack:  make(map[string]bool),
	}
	for _, n := range nodes {
		if _, ok := t.indices[n]; !ok {
			t.strongconnect(n)
		}
	}

	var cycles []types.Cycle
	for _, scc := range t.sccs {
		if len(scc) > 1 {
			cycles = append(cycles, types.Cycle{Nodes: scc})
			continue
		}
		node := scc[0]
		for _, neighbor := range t.adj[node] {
			if neighbor == node {
				cycles = append(cycles, types.Cycle{Nodes: scc})
				break
			}
		}
	}
	return cycles
}

func (t *tarjan) strongconnect(node string) {
	t.indices[node] = t.index
	t.lowlinks[node] = t.index
	t.index++
	t.stack = append(t.stack, node)
	t.onStack[node] = true

	for _, w := range t.adj[node] {
		if _, visited := t.indices[w]; !visited {
			t.strongconnect(w)
			if t.lowlinks[w] < t.lowlinks[node] {
				t.lowlinks[node] = t.lowlinks[w]
			}
		} else if t.onStack[w] {
			if t.indices[w] < t.lowlinks[node] {
				t.lowlinks[node] = t.indices[w]
			}
		}
	}

	if t.lowlinks[node] == t.indices[node] {
		var scc []string
		for {
			n := len(t.stack) - 1
			w := t.stack[n]
			t.stack = t.stack[:n]
			t.onStack[w] = false
			scc = append(scc, w)
			if w == node {
				break
			}
		}
		t.sccs = append(t.sccs, scc)
	}
}

// FindLazy reports the subset of cycles whose every participating edge
// originates from a function-body ("lazy") import, per §4.5's optional
// lazy-cycle sub-report. lazyEdges identifies (from,to) pairs recorded as
// lazy by a lexer; a cycle not fully covered by lazyEdges is omitted.
func FindLazy(edges []types.GraphEdge, lazyEdges map[[2]string]bool) []types.Cycle {
	all := Find(edges)
	var lazy []types.Cycle
	for _, c := range all {
		in := make(map[string]bool, len(c.Nodes))
		for _, n := range c.Nodes {
			in[n] = true
		}
		allLazy := true
		for _, e := range edges {
			if e.Label != types.EdgeImport && e.Label != types.EdgeReexport {
				continue
			}
			if in[e.From] && in[e.To] && !lazyEdges[[2]string{e.From, e.To}] {
				allLazy = false
				break
			}
		}
		if allLazy {
			c.Lazy = true
			lazy = append(lazy, c)
		}
	}
	return lazy
}
