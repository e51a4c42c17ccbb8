// Package render converts dependency graphs to Graphviz DOT and SVG for
// diagnostics and documentation.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/convoyhq/convoy/pkg/graph"
)

// Options configures DOT rendering.
type Options struct {
	// Detailed includes version and repo info in node labels.
	// When false, only the package name is shown.
	Detailed bool
}

// ToDOT converts a graph snapshot to Graphviz DOT format.
//
// Edges are styled by dependency type: prod edges solid, peer edges
// grey, dev edges dashed. Private (non-publishable) packages get a grey
// fill so a reader can see at a glance what a publish run would skip.
func ToDOT(snap graph.Snapshot, opts Options) string {
	depTypes := edgeTypes(snap)

	var buf bytes.Buffer
	buf.WriteString("digraph deps {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, n := range snap.Nodes {
		attrs := []string{fmt.Sprintf("label=%q", nodeLabel(n, opts.Detailed))}
		if !n.Publishable {
			attrs = append(attrs, "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.Name, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range snap.Edges {
		attrs := edgeAttrs(depTypes[edgeKey(e.From, e.To)])
		if attrs == "" {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, attrs)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(n graph.SnapshotNode, detailed bool) string {
	if !detailed {
		return n.Name
	}
	parts := []string{n.Name}
	if n.Version != "" {
		parts = append(parts, n.Version)
	}
	if n.Repo != "" {
		parts = append(parts, n.Repo)
	}
	return strings.Join(parts, "\n")
}

func edgeAttrs(depType string) string {
	switch depType {
	case "dev":
		return "style=dashed, color=grey50"
	case "peer":
		return "color=grey30"
	default:
		return ""
	}
}

// edgeTypes indexes the snapshot's dependency specs by edge so the
// renderer can style each edge by its type.
func edgeTypes(snap graph.Snapshot) map[string]string {
	types := make(map[string]string)
	for _, n := range snap.Nodes {
		for _, d := range n.Dependencies {
			types[edgeKey(d.Name, n.Name)] = d.Type
		}
	}
	return types
}

func edgeKey(from, to string) string { return from + "\x00" + to }

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
