// Package store archives computed plans for later inspection.
//
// The archive is strictly write-once history: graphs themselves are
// never persisted or reused across runs, only the finished Plan records
// (order, report, snapshot). Two backends are provided:
//   - FileStore: JSON files in a directory, for CLI usage
//   - MongoStore: MongoDB collection, for shared deployments
package store

import (
	"context"

	"github.com/convoyhq/convoy/pkg/plan"
)

// Store is the interface for plan archive backends.
type Store interface {
	// Save persists a plan. Saving an existing ID overwrites it.
	Save(ctx context.Context, p *plan.Plan) error

	// Get retrieves a plan by ID. Returns an error with code
	// PLAN_NOT_FOUND if no such plan exists.
	Get(ctx context.Context, id string) (*plan.Plan, error)

	// List returns summaries of archived plans, newest first.
	List(ctx context.Context) ([]Summary, error)

	// Delete removes a plan. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// Summary is the listing view of an archived plan.
type Summary struct {
	ID           string `json:"id" bson:"_id"`
	CreatedAt    string `json:"created_at" bson:"created_at"`
	SnapshotHash string `json:"snapshot_hash" bson:"snapshot_hash"`
	Packages     int    `json:"packages" bson:"packages"`
	Blocked      bool   `json:"blocked" bson:"blocked"`
}

// summarize builds the listing view of a plan.
func summarize(p *plan.Plan) Summary {
	return Summary{
		ID:           p.ID,
		CreatedAt:    p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		SnapshotHash: p.SnapshotHash,
		Packages:     len(p.Snapshot.Nodes),
		Blocked:      p.Report.Blocking(),
	}
}
