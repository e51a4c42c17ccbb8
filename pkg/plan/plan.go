// Package plan runs the build → order → analyze pipeline over a
// workspace and assembles the result into a Plan.
//
// The Runner owns the fixed-point loop: manifests are reloaded and the
// graph rebuilt until two consecutive loads hash identically or the
// configured iteration cap is reached. The graph core itself never
// enforces the cap and is built fresh each iteration.
package plan

import (
	"time"

	"github.com/convoyhq/convoy/pkg/graph"
)

// Plan is the complete result of one planning run.
type Plan struct {
	ID           string    `json:"id" bson:"_id"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	SnapshotHash string    `json:"snapshot_hash" bson:"snapshot_hash"`
	// Iterations is the number of graph builds the fixed-point loop
	// performed before converging.
	Iterations int `json:"iterations" bson:"iterations"`

	// Order is the publish order: dependencies before dependents,
	// dev edges excluded. Empty when planning failed on a cycle.
	Order []string `json:"order" bson:"order"`

	Report   graph.Report   `json:"report" bson:"report"`
	Snapshot graph.Snapshot `json:"snapshot" bson:"snapshot"`

	// Cached reports whether this plan came from the cache rather than
	// a fresh computation. Not persisted.
	Cached bool `json:"-" bson:"-"`
}

// Publishable filters the plan's order down to packages marked
// publishable in their manifests. Private packages keep their place in
// the ordering but are skipped when publishing.
func (p *Plan) Publishable() []string {
	publishable := make(map[string]bool, len(p.Snapshot.Nodes))
	for _, n := range p.Snapshot.Nodes {
		publishable[n.Name] = n.Publishable
	}
	var out []string
	for _, name := range p.Order {
		if publishable[name] {
			out = append(out, name)
		}
	}
	return out
}
