package graph

// DepType classifies a dependency edge by the manifest section it was
// declared in. The numeric order is the merge precedence: when the same
// dependency name appears in more than one section, the higher type wins.
type DepType int

const (
	// DepDev is a devDependencies entry. Dev edges never constrain the
	// publish order and dev-only cycles are tolerated.
	DepDev DepType = iota
	// DepPeer is a peerDependencies entry.
	DepPeer
	// DepProd is a dependencies entry.
	DepProd
)

// String returns the manifest-section style name of the type.
func (t DepType) String() string {
	switch t {
	case DepProd:
		return "prod"
	case DepPeer:
		return "peer"
	case DepDev:
		return "dev"
	}
	return "unknown"
}

// Spec is the metadata for one directed dependency edge.
type Spec struct {
	Type     DepType // section the dependency was declared in (after merge)
	Range    string  // declared version range, verbatim from the manifest
	Resolved string  // concrete version chosen by the orchestrator, if any
}

// Node is one package tracked in the graph.
//
// Deps is the forward adjacency (name → spec) including external
// dependencies that have no node in the graph. Dependents is the reverse
// view restricted to names that are graph nodes.
type Node struct {
	Name        string
	Version     string
	Repo        string // directory the manifest was read from, if known
	Publishable bool   // manifest not marked private
	Deps        map[string]Spec
	Dependents  map[string]struct{}
}
