package graph

import (
	"sort"
	"strings"
)

// Cycles holds the cycles found by CyclesByType, split by edge type.
// Production cycles block publishing; dev cycles are informational.
type Cycles struct {
	Production [][]string `json:"production_cycles"`
	Dev        [][]string `json:"dev_cycles"`
}

// CyclesByType runs two independent depth-first searches over the same
// nodes: one over prod+peer edges (these block publishing) and one over
// dev edges only. Each search roots from every unvisited node so that
// disjoint cycles are all found.
//
// Cycles whose node sets are identical are reported once, regardless of
// the traversal path that reached them: the dedupe key is the sorted
// node-name list, so one representative path is kept per node set.
func (g *Graph) CyclesByType() Cycles {
	return Cycles{
		Production: g.findCycles(func(s Spec) bool { return s.Type != DepDev }),
		Dev:        g.findCycles(func(s Spec) bool { return s.Type == DepDev }),
	}
}

// findCycles collects cycles over the subgraph of edges matching keep.
// Classic DFS with a recursion stack: a back-edge into a node currently
// on the stack yields the cycle running from that node's first stack
// occurrence through the current node.
func (g *Graph) findCycles(keep func(Spec) bool) [][]string {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(g.nodes))
	seen := make(map[string]bool) // dedupe by sorted node-name key
	var stack []string
	var cycles [][]string

	var dfs func(name string)
	dfs = func(name string) {
		color[name] = gray
		stack = append(stack, name)

		n := g.nodes[name]
		for _, dep := range sortedDeps(n.Deps) {
			if !keep(n.Deps[dep]) {
				continue
			}
			if _, ok := g.nodes[dep]; !ok {
				continue
			}
			switch color[dep] {
			case white:
				dfs(dep)
			case gray:
				// Back edge: the cycle is the stack suffix starting at dep.
				start := 0
				for i, s := range stack {
					if s == dep {
						start = i
						break
					}
				}
				cycle := append([]string(nil), stack[start:]...)
				if key := cycleKey(cycle); !seen[key] {
					seen[key] = true
					cycles = append(cycles, cycle)
				}
			}
		}

		stack = stack[:len(stack)-1]
		color[name] = black
	}

	for _, name := range g.order {
		if color[name] == white {
			dfs(name)
		}
	}

	return cycles
}

func cycleKey(cycle []string) string {
	names := append([]string(nil), cycle...)
	sort.Strings(names)
	return strings.Join(names, "\x00")
}
