package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
)

// Snapshot is the canonical read-only serialization of a graph, intended
// for diagnostics and UI consumption. It is pure structure: building it
// never mutates the graph, and nothing inside this package consumes it.
type Snapshot struct {
	Nodes []SnapshotNode `json:"nodes" bson:"nodes"`
	Edges []SnapshotEdge `json:"edges" bson:"edges"`
}

// SnapshotNode is the serialized form of one package.
type SnapshotNode struct {
	Name         string        `json:"name" bson:"name"`
	Version      string        `json:"version" bson:"version"`
	Repo         string        `json:"repo,omitempty" bson:"repo,omitempty"`
	Publishable  bool          `json:"publishable" bson:"publishable"`
	Dependencies []SnapshotDep `json:"dependencies" bson:"dependencies"`
	Dependents   []string      `json:"dependents" bson:"dependents"`
}

// SnapshotDep is one declared dependency, including external ones that
// produced no edge.
type SnapshotDep struct {
	Name     string `json:"name" bson:"name"`
	Type     string `json:"type" bson:"type"`
	Range    string `json:"range" bson:"range"`
	Resolved string `json:"resolved,omitempty" bson:"resolved,omitempty"`
}

// SnapshotEdge is a "To depends on From" relationship between two graph
// nodes.
type SnapshotEdge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// Snapshot builds the serialized view of the graph. Nodes, dependency
// lists and edges are sorted so output is deterministic.
func (g *Graph) Snapshot() Snapshot {
	snap := Snapshot{
		Nodes: make([]SnapshotNode, 0, len(g.nodes)),
	}

	names := append([]string(nil), g.order...)
	sort.Strings(names)

	for _, name := range names {
		n := g.nodes[name]

		node := SnapshotNode{
			Name:         n.Name,
			Version:      n.Version,
			Repo:         n.Repo,
			Publishable:  n.Publishable,
			Dependencies: make([]SnapshotDep, 0, len(n.Deps)),
			Dependents:   make([]string, 0, len(n.Dependents)),
		}
		for _, dep := range sortedDeps(n.Deps) {
			spec := n.Deps[dep]
			node.Dependencies = append(node.Dependencies, SnapshotDep{
				Name:     dep,
				Type:     spec.Type.String(),
				Range:    spec.Range,
				Resolved: spec.Resolved,
			})
		}
		for dependent := range n.Dependents {
			node.Dependents = append(node.Dependents, dependent)
		}
		sort.Strings(node.Dependents)

		snap.Nodes = append(snap.Nodes, node)

		for _, dep := range sortedDeps(n.Deps) {
			if _, ok := g.nodes[dep]; ok {
				snap.Edges = append(snap.Edges, SnapshotEdge{From: dep, To: name})
			}
		}
	}

	sort.Slice(snap.Edges, func(i, j int) bool {
		if snap.Edges[i].From != snap.Edges[j].From {
			return snap.Edges[i].From < snap.Edges[j].From
		}
		return snap.Edges[i].To < snap.Edges[j].To
	})

	return snap
}

// MarshalSnapshot converts a graph to indented JSON bytes.
func MarshalSnapshot(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteSnapshot(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteSnapshot writes a graph's snapshot as JSON to w.
func WriteSnapshot(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g.Snapshot()); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteSnapshotFile writes a graph's snapshot to a JSON file.
// The file is created with 0644 permissions.
func WriteSnapshotFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteSnapshot(g, f)
}
