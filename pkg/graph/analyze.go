package graph

// Wildcard is the unconstrained version range marker. Detection matches
// only this literal string; broad but technically bounded ranges (e.g.
// ">=0.0.0") are deliberately not flagged.
const Wildcard = "*"

// WildcardDep flags a dependency declared with the literal wildcard
// range - usually an unintentionally unpinned dependency.
type WildcardDep struct {
	Pkg     string `json:"pkg" bson:"pkg"`
	Dep     string `json:"dep" bson:"dep"`
	Version string `json:"version" bson:"version"`
}

// MissingPeer flags a peer dependency whose target has no node in the
// graph: it must be satisfied externally and this graph cannot verify it.
type MissingPeer struct {
	Pkg string `json:"pkg" bson:"pkg"`
	Dep string `json:"dep" bson:"dep"`
}

// Report is the advisory analysis of a built graph. None of its findings
// are errors: they accompany a successful computation and the caller
// decides how to act. Only ProductionCycles indicate a state that will
// also make PublishOrder fail.
type Report struct {
	ProductionCycles [][]string    `json:"production_cycles" bson:"production_cycles"`
	DevCycles        [][]string    `json:"dev_cycles" bson:"dev_cycles"`
	WildcardDeps     []WildcardDep `json:"wildcard_deps" bson:"wildcard_deps"`
	MissingPeers     []MissingPeer `json:"missing_peers" bson:"missing_peers"`
}

// Blocking reports whether the analysis found production cycles, i.e.
// whether a publish-order computation over this graph would fail.
func (r Report) Blocking() bool { return len(r.ProductionCycles) > 0 }

// Analyze derives the diagnostic findings for the graph: cycles by edge
// type, wildcard version ranges, and peer dependencies with no matching
// node. Nodes are scanned in insertion order and dependency names in
// sorted order, so reports are reproducible.
func (g *Graph) Analyze() Report {
	cycles := g.CyclesByType()
	report := Report{
		ProductionCycles: cycles.Production,
		DevCycles:        cycles.Dev,
	}

	for _, name := range g.order {
		n := g.nodes[name]
		for _, dep := range sortedDeps(n.Deps) {
			spec := n.Deps[dep]
			if spec.Range == Wildcard {
				report.WildcardDeps = append(report.WildcardDeps, WildcardDep{
					Pkg:     name,
					Dep:     dep,
					Version: spec.Range,
				})
			}
			if spec.Type == DepPeer {
				if _, ok := g.nodes[dep]; !ok {
					report.MissingPeers = append(report.MissingPeers, MissingPeer{
						Pkg: name,
						Dep: dep,
					})
				}
			}
		}
	}

	return report
}
