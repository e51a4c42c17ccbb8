// Package pkg provides the core libraries for convoy publish planning.
//
// # Overview
//
// Convoy computes a safe publish ordering for interdependent packages
// spread across multiple repositories. The pkg directory is organized
// into three main areas:
//
//  1. [graph] - Domain logic (dependency graph, cycles, ordering, analysis)
//  2. [manifest], [config] - Input (package manifests and TOML configuration)
//  3. [plan], [cache], [store], [render] - Orchestration and output
//
// # Architecture
//
// The typical data flow through convoy:
//
//	package.json manifests
//	         ↓
//	manifest.WorkspaceLoader  (discover and parse)
//	         ↓
//	graph.New                 (merge dep sections, reverse edges)
//	         ↓
//	graph.Analyze             (cycles by type, wildcards, missing peers)
//	graph.PublishOrder        (Kahn's algorithm, dev edges excluded)
//	         ↓
//	plan.Runner               (fixed-point loop, cached by snapshot hash)
//	         ↓
//	render / store / serve    (DOT, SVG, JSON, plan archive, HTTP API)
//
// Ordering runs on production and peer edges only, so dev-only cycles
// never block a plan. Production cycles do, and the analysis report
// names their members.
package pkg
