package graph

import (
	"reflect"
	"sort"
	"testing"

	"github.com/convoyhq/convoy/pkg/manifest"
)

func TestCyclesByType_Acyclic(t *testing.T) {
	g := New([]manifest.Manifest{
		{Name: "a", Dependencies: map[string]string{"b": "1"}},
		{Name: "b", Dependencies: map[string]string{"c": "1"}},
		{Name: "c"},
	})

	cycles := g.CyclesByType()
	if len(cycles.Production) != 0 {
		t.Errorf("Production = %v, want none", cycles.Production)
	}
	if len(cycles.Dev) != 0 {
		t.Errorf("Dev = %v, want none", cycles.Dev)
	}
}

func TestCyclesByType_DevOnlyCycle(t *testing.T) {
	g := New([]manifest.Manifest{
		{Name: "a", DevDependencies: map[string]string{"b": "*"}},
		{Name: "b", DevDependencies: map[string]string{"a": "*"}},
	})

	cycles := g.CyclesByType()
	if len(cycles.Production) != 0 {
		t.Errorf("Production = %v, want none", cycles.Production)
	}
	if len(cycles.Dev) != 1 {
		t.Fatalf("Dev cycle count = %d, want 1", len(cycles.Dev))
	}
	assertCycleMembers(t, cycles.Dev[0], []string{"a", "b"})
}

func TestCyclesByType_ProdCycle(t *testing.T) {
	g := New([]manifest.Manifest{
		{Name: "a", Dependencies: map[string]string{"b": "1"}},
		{Name: "b", Dependencies: map[string]string{"a": "1"}},
	})

	cycles := g.CyclesByType()
	if len(cycles.Production) != 1 {
		t.Fatalf("Production cycle count = %d, want 1", len(cycles.Production))
	}
	assertCycleMembers(t, cycles.Production[0], []string{"a", "b"})
	if len(cycles.Dev) != 0 {
		t.Errorf("Dev = %v, want none", cycles.Dev)
	}
}

func TestCyclesByType_PeerEdgesCountAsProduction(t *testing.T) {
	g := New([]manifest.Manifest{
		{Name: "a", PeerDependencies: map[string]string{"b": ">=1"}},
		{Name: "b", Dependencies: map[string]string{"a": "1"}},
	})

	cycles := g.CyclesByType()
	if len(cycles.Production) != 1 {
		t.Fatalf("Production cycle count = %d, want 1", len(cycles.Production))
	}
	assertCycleMembers(t, cycles.Production[0], []string{"a", "b"})
}

func TestCyclesByType_DisjointCycles(t *testing.T) {
	g := New([]manifest.Manifest{
		{Name: "a", Dependencies: map[string]string{"b": "1"}},
		{Name: "b", Dependencies: map[string]string{"a": "1"}},
		{Name: "x", Dependencies: map[string]string{"y": "1"}},
		{Name: "y", Dependencies: map[string]string{"z": "1"}},
		{Name: "z", Dependencies: map[string]string{"x": "1"}},
	})

	cycles := g.CyclesByType()
	if len(cycles.Production) != 2 {
		t.Fatalf("Production cycle count = %d, want 2", len(cycles.Production))
	}
}

func TestCyclesByType_DedupesByNodeSet(t *testing.T) {
	// The triangle is reachable from two roots; the cycle must still be
	// reported exactly once.
	g := New([]manifest.Manifest{
		{Name: "r1", Dependencies: map[string]string{"a": "1"}},
		{Name: "r2", Dependencies: map[string]string{"b": "1"}},
		{Name: "a", Dependencies: map[string]string{"b": "1"}},
		{Name: "b", Dependencies: map[string]string{"c": "1"}},
		{Name: "c", Dependencies: map[string]string{"a": "1"}},
	})

	cycles := g.CyclesByType()
	if len(cycles.Production) != 1 {
		t.Fatalf("Production cycle count = %d, want 1", len(cycles.Production))
	}
	assertCycleMembers(t, cycles.Production[0], []string{"a", "b", "c"})
}

func TestCyclesByType_SelfDependency(t *testing.T) {
	g := New([]manifest.Manifest{
		{Name: "a", Dependencies: map[string]string{"a": "1"}},
	})

	cycles := g.CyclesByType()
	if len(cycles.Production) != 1 {
		t.Fatalf("Production cycle count = %d, want 1", len(cycles.Production))
	}
	assertCycleMembers(t, cycles.Production[0], []string{"a"})
}

func assertCycleMembers(t *testing.T, cycle, want []string) {
	t.Helper()
	got := append([]string(nil), cycle...)
	sort.Strings(got)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("cycle members = %v, want %v", got, want)
	}
}
