package store

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/convoyhq/convoy/pkg/errors"
	"github.com/convoyhq/convoy/pkg/graph"
	"github.com/convoyhq/convoy/pkg/plan"
)

func testPlan(id string, created time.Time) *plan.Plan {
	return &plan.Plan{
		ID:           id,
		CreatedAt:    created,
		SnapshotHash: "hash-" + id,
		Iterations:   1,
		Order:        []string{"lib", "app"},
		Snapshot: graph.Snapshot{
			Nodes: []graph.SnapshotNode{
				{Name: "app", Publishable: true},
				{Name: "lib", Publishable: true},
			},
		},
	}
}

func TestFileStore_SaveGet(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	ctx := context.Background()

	want := testPlan("p1", time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != want.ID || got.SnapshotHash != want.SnapshotHash {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
	if !reflect.DeepEqual(got.Order, want.Order) {
		t.Errorf("Order = %v, want %v", got.Order, want.Order)
	}
}

func TestFileStore_GetMissing(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	_, err = s.Get(context.Background(), "nope")
	if !errors.Is(err, errors.ErrCodePlanNotFound) {
		t.Errorf("error code = %s, want PLAN_NOT_FOUND", errors.GetCode(err))
	}
}

func TestFileStore_ListNewestFirst(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		if err := s.Save(ctx, testPlan(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatal(err)
		}
	}

	summaries, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	var ids []string
	for _, sum := range summaries {
		ids = append(ids, sum.ID)
	}
	if !reflect.DeepEqual(ids, []string{"new", "mid", "old"}) {
		t.Errorf("List() order = %v, want [new mid old]", ids)
	}
	if summaries[0].Packages != 2 {
		t.Errorf("Packages = %d, want 2", summaries[0].Packages)
	}
}

func TestFileStore_Delete(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := s.Save(ctx, testPlan("p1", time.Now())); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "p1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, "p1"); !errors.Is(err, errors.ErrCodePlanNotFound) {
		t.Error("plan still present after Delete()")
	}
	// Deleting again is not an error.
	if err := s.Delete(ctx, "p1"); err != nil {
		t.Errorf("Delete(missing) error = %v, want nil", err)
	}
}

func TestSummary_Blocked(t *testing.T) {
	p := testPlan("p1", time.Now())
	p.Report.ProductionCycles = [][]string{{"a", "b"}}
	p.Order = nil

	sum := summarize(p)
	if !sum.Blocked {
		t.Error("Blocked = false, want true")
	}
}
