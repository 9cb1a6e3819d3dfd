// Package checker scans a classified project for violations: layer
// boundary breaches, package cycles, missing ports, init coupling, anemic
// domain entities and user-defined deny-rules.
package checker

import (
	"sort"

	"github.com/boundary-cli/boundary/internal/domain"
)

// PackageCycles finds strongly connected components of size >= 2 in the
// package-level projection of the graph, restricted to internal,
// non-cross-cutting packages. Tarjan over an array-indexed adjacency list;
// each cycle is reported once, starting from its lexicographically
// smallest package, and cycles are ordered by that smallest package.
func PackageCycles(p *domain.Project) [][]string {
	include := func(pkg *domain.Package) bool {
		return pkg.Layer != domain.LayerExternal && pkg.Layer != domain.LayerCrossCutting
	}

	var paths []string
	for _, pkg := range p.Packages {
		if include(pkg) {
			paths = append(paths, pkg.Path)
		}
	}
	sort.Strings(paths)
	index := make(map[string]int, len(paths))
	for i, path := range paths {
		index[path] = i
	}

	adj := make([][]int, len(paths))
	seen := make(map[[2]int]bool)
	for _, e := range p.Edges {
		src := p.Components[e.Source]
		if src == nil {
			continue
		}
		si, ok := index[src.Package]
		if !ok {
			continue
		}
		ti, ok := index[e.TargetPkg]
		if !ok || si == ti {
			continue
		}
		key := [2]int{si, ti}
		if seen[key] {
			continue
		}
		seen[key] = true
		adj[si] = append(adj[si], ti)
	}
	for i := range adj {
		sort.Ints(adj[i])
	}

	t := &tarjan{
		adj:     adj,
		indexOf: make([]int, len(paths)),
		lowlink: make([]int, len(paths)),
		onStack: make([]bool, len(paths)),
	}
	for i := range t.indexOf {
		t.indexOf[i] = -1
	}
	for v := range adj {
		if t.indexOf[v] == -1 {
			t.strongConnect(v)
		}
	}

	var cycles [][]string
	for _, scc := range t.sccs {
		if len(scc) < 2 {
			continue
		}
		// Stack pop order is the reverse of DFS visit order; reversing
		// restores the traversal path around the cycle.
		cycle := make([]string, len(scc))
		for i, v := range scc {
			cycle[len(scc)-1-i] = paths[v]
		}
		cycles = append(cycles, rotateToSmallest(cycle))
	}
	sort.Slice(cycles, func(i, j int) bool { return cycles[i][0] < cycles[j][0] })
	return cycles
}

// rotateToSmallest rotates a cycle so the lexicographically smallest
// package comes first while preserving adjacency.
func rotateToSmallest(cycle []string) []string {
	minIdx := 0
	for i, s := range cycle {
		if s < cycle[minIdx] {
			minIdx = i
		}
	}
	out := make([]string, len(cycle))
	for i := range cycle {
		out[i] = cycle[(minIdx+i)%len(cycle)]
	}
	return out
}

type tarjan struct {
	adj     [][]int
	indexOf []int
	lowlink []int
	onStack []bool
	stack   []int
	counter int
	sccs    [][]int
}

func (t *tarjan) strongConnect(v int) {
	t.indexOf[v] = t.counter
	t.lowlink[v] = t.counter
	t.counter++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, w := range t.adj[v] {
		if t.indexOf[w] == -1 {
			t.strongConnect(w)
			if t.lowlink[w] < t.lowlink[v] {
				t.lowlink[v] = t.lowlink[w]
			}
		} else if t.onStack[w] && t.indexOf[w] < t.lowlink[v] {
			t.lowlink[v] = t.indexOf[w]
		}
	}

	if t.lowlink[v] == t.indexOf[v] {
		var scc []int
		for {
			w := t.stack[len(t.stack)-1]
			t.stack = t.stack[:len(t.stack)-1]
			t.onStack[w] = false
			scc = append(scc, w)
			if w == v {
				break
			}
		}
		t.sccs = append(t.sccs, scc)
	}
}
