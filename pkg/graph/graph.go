// Package graph computes safe publish orderings for interdependent
// packages spread across multiple repositories.
//
// A Graph is built once from an immutable snapshot of manifests and is
// never mutated afterwards; each planning iteration builds a fresh graph.
// On top of the built graph the package provides topological ordering
// ([Graph.TopoSort], [PublishOrder]), per-type cycle detection
// ([Graph.CyclesByType]), advisory analysis ([Graph.Analyze]) and a
// read-only serialized snapshot ([Graph.Snapshot]).
//
// The package is pure computation: no I/O, no locks, no goroutines.
// Independent builds may run concurrently as long as each owns its own
// Graph instance.
package graph

import (
	"sort"

	"github.com/convoyhq/convoy/pkg/manifest"
)

// Graph is a dependency graph over a fixed set of packages.
//
// Forward adjacency lives on each node's Deps map; edges holds the
// derived reverse adjacency: edges[name] lists the packages that depend
// on name. Only dependencies whose target is itself a graph node produce
// an entry in edges - external dependencies stay recorded on the node
// but create no edge.
type Graph struct {
	nodes map[string]*Node
	edges map[string][]string
	order []string // node names in insertion order, for reproducible ties
}

// New builds a graph from a snapshot of manifests in two passes.
//
// Pass 1 creates one node per manifest. The three dependency sections
// are merged weakest to strongest (dev, then peer, then prod) into a
// single map, so a prod or peer entry silently overwrites a dev entry
// for the same name. Reversing this order changes semantics; keep it.
//
// Pass 2 wires reverse edges: for every recorded dependency whose target
// name matches an existing node, the source is added to the target's
// dependents and to edges[target].
func New(manifests []manifest.Manifest) *Graph {
	g := &Graph{
		nodes: make(map[string]*Node, len(manifests)),
		edges: make(map[string][]string, len(manifests)),
		order: make([]string, 0, len(manifests)),
	}

	for _, m := range manifests {
		n := &Node{
			Name:        m.Name,
			Version:     m.Version,
			Repo:        m.Repo,
			Publishable: !m.Private,
			Deps:        make(map[string]Spec),
			Dependents:  make(map[string]struct{}),
		}
		mergeSection(n.Deps, m.DevDependencies, DepDev)
		mergeSection(n.Deps, m.PeerDependencies, DepPeer)
		mergeSection(n.Deps, m.Dependencies, DepProd)

		g.nodes[n.Name] = n
		g.order = append(g.order, n.Name)
	}

	for _, name := range g.order {
		n := g.nodes[name]
		for _, dep := range sortedDeps(n.Deps) {
			target, ok := g.nodes[dep]
			if !ok {
				continue // external dependency, no edge
			}
			target.Dependents[name] = struct{}{}
			g.edges[dep] = append(g.edges[dep], name)
		}
	}

	return g
}

func mergeSection(deps map[string]Spec, section map[string]string, t DepType) {
	for name, rng := range section {
		deps[name] = Spec{Type: t, Range: rng}
	}
}

// Node returns the node with the given name, or false if it is unknown.
func (g *Graph) Node(name string) (*Node, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// Names returns all node names in insertion order.
func (g *Graph) Names() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Len returns the number of packages in the graph.
func (g *Graph) Len() int { return len(g.nodes) }

// Dependents returns the names of packages that depend on name.
// Unknown names yield an empty result, not an error - callers may
// speculatively query names absent from the graph.
func (g *Graph) Dependents(name string) []string {
	deps := g.edges[name]
	out := make([]string, len(deps))
	copy(out, deps)
	return out
}

// Dependencies returns the in-graph dependency names of name, sorted.
// External dependencies (recorded on the node but without a node of
// their own) are not included. Unknown names yield an empty result.
func (g *Graph) Dependencies(name string) []string {
	n, ok := g.nodes[name]
	if !ok {
		return nil
	}
	var out []string
	for _, dep := range sortedDeps(n.Deps) {
		if _, ok := g.nodes[dep]; ok {
			out = append(out, dep)
		}
	}
	return out
}

// sortedDeps returns the keys of a dependency map in sorted order.
// Map iteration order is not deterministic; every traversal that feeds
// ordering or reporting goes through this.
func sortedDeps(deps map[string]Spec) []string {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
