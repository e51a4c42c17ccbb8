package graph

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCycle is the sentinel wrapped by every *OrderingError, so callers
// can test for ordering failures with errors.Is(err, graph.ErrCycle).
var ErrCycle = errors.New("dependency graph contains a cycle")

// OrderingError is returned by TopoSort when the filtered graph is not
// acyclic. It carries the names of the nodes that could not be ordered;
// use CyclesByType to localize the cycle's members precisely.
//
// The failure is fatal for the requested ordering: callers must break
// the cycle and retry with a fresh graph, never retry automatically.
type OrderingError struct {
	Unresolved []string
}

func (e *OrderingError) Error() string {
	return fmt.Sprintf("cannot order %d packages (cycle among %s)",
		len(e.Unresolved), strings.Join(e.Unresolved, ", "))
}

// Unwrap lets errors.Is match ErrCycle.
func (e *OrderingError) Unwrap() error { return ErrCycle }

// TopoSort returns all node names ordered so that for every retained
// edge, the dependency precedes its dependents. When excludeDev is true,
// dev-type edges impose no ordering constraint at all - this is what
// makes dev-only cycles tolerable when computing a publish order.
//
// The implementation is Kahn's algorithm by rounds: each round removes
// every node whose retained in-graph dependencies are already ordered,
// scanning nodes in insertion order so ties are reproducible. If a round
// makes no progress while nodes remain, the leftover nodes form at least
// one cycle and an *OrderingError listing them is returned.
func (g *Graph) TopoSort(excludeDev bool) ([]string, error) {
	retained := func(s Spec) bool { return !excludeDev || s.Type != DepDev }

	// Remaining retained-dependency count per node.
	pending := make(map[string]int, len(g.nodes))
	for _, name := range g.order {
		n := g.nodes[name]
		count := 0
		for dep, spec := range n.Deps {
			if _, ok := g.nodes[dep]; ok && retained(spec) {
				count++
			}
		}
		pending[name] = count
	}

	ordered := make([]string, 0, len(g.nodes))
	placed := make(map[string]bool, len(g.nodes))

	for len(ordered) < len(g.order) {
		progress := false
		for _, name := range g.order {
			if placed[name] || pending[name] != 0 {
				continue
			}
			placed[name] = true
			ordered = append(ordered, name)
			progress = true
			for _, dependent := range g.edges[name] {
				if spec := g.nodes[dependent].Deps[name]; retained(spec) {
					pending[dependent]--
				}
			}
		}
		if !progress {
			var unresolved []string
			for _, name := range g.order {
				if !placed[name] {
					unresolved = append(unresolved, name)
				}
			}
			return nil, &OrderingError{Unresolved: unresolved}
		}
	}

	return ordered, nil
}

// PublishOrder computes the order in which the graph's packages can be
// safely published. Dev edges are always excluded: dev-only cycles
// (shared tooling depending on itself) are expected and must never block
// publishing.
func PublishOrder(g *Graph) ([]string, error) {
	return g.TopoSort(true)
}
