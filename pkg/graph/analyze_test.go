package graph

import (
	"reflect"
	"testing"

	"github.com/convoyhq/convoy/pkg/manifest"
)

func TestAnalyze_WildcardDeps(t *testing.T) {
	g := New([]manifest.Manifest{
		{Name: "a", Dependencies: map[string]string{"b": "*", "c": ">=0.0.0"}},
		{Name: "b"},
		{Name: "c"},
	})

	report := g.Analyze()
	want := []WildcardDep{{Pkg: "a", Dep: "b", Version: "*"}}
	if !reflect.DeepEqual(report.WildcardDeps, want) {
		t.Errorf("WildcardDeps = %v, want %v", report.WildcardDeps, want)
	}
}

func TestAnalyze_MissingPeers(t *testing.T) {
	g := New([]manifest.Manifest{
		{Name: "a", PeerDependencies: map[string]string{"ext": ">=1"}},
	})

	report := g.Analyze()
	want := []MissingPeer{{Pkg: "a", Dep: "ext"}}
	if !reflect.DeepEqual(report.MissingPeers, want) {
		t.Errorf("MissingPeers = %v, want %v", report.MissingPeers, want)
	}

	// From spec scenario D: the unknown peer also has no dependents.
	if deps := g.Dependents("ext"); len(deps) != 0 {
		t.Errorf("Dependents(ext) = %v, want empty", deps)
	}
}

func TestAnalyze_SatisfiedPeerNotFlagged(t *testing.T) {
	g := New([]manifest.Manifest{
		{Name: "plugin", PeerDependencies: map[string]string{"host": ">=1"}},
		{Name: "host"},
	})

	if report := g.Analyze(); len(report.MissingPeers) != 0 {
		t.Errorf("MissingPeers = %v, want none", report.MissingPeers)
	}
}

func TestAnalyze_CyclesSplitByType(t *testing.T) {
	g := New([]manifest.Manifest{
		{Name: "a", Dependencies: map[string]string{"b": "1"}},
		{Name: "b", Dependencies: map[string]string{"a": "1"}},
		{Name: "t1", DevDependencies: map[string]string{"t2": "*"}},
		{Name: "t2", DevDependencies: map[string]string{"t1": "*"}},
	})

	report := g.Analyze()
	if len(report.ProductionCycles) != 1 {
		t.Errorf("ProductionCycles count = %d, want 1", len(report.ProductionCycles))
	}
	if len(report.DevCycles) != 1 {
		t.Errorf("DevCycles count = %d, want 1", len(report.DevCycles))
	}
	if !report.Blocking() {
		t.Error("Blocking() = false, want true")
	}
}

func TestAnalyze_CleanGraphNotBlocking(t *testing.T) {
	g := New([]manifest.Manifest{
		{Name: "a", Dependencies: map[string]string{"b": "^1.0.0"}},
		{Name: "b"},
	})

	report := g.Analyze()
	if report.Blocking() {
		t.Error("Blocking() = true, want false")
	}
	if len(report.DevCycles) != 0 || len(report.WildcardDeps) != 0 || len(report.MissingPeers) != 0 {
		t.Errorf("unexpected findings: %+v", report)
	}
}

func TestAnalyze_WildcardInDevSection(t *testing.T) {
	// Merge keeps the prod range, so the dev wildcard must not be flagged.
	g := New([]manifest.Manifest{
		{
			Name:            "a",
			Dependencies:    map[string]string{"b": "^1.0.0"},
			DevDependencies: map[string]string{"b": "*"},
		},
		{Name: "b"},
	})

	if report := g.Analyze(); len(report.WildcardDeps) != 0 {
		t.Errorf("WildcardDeps = %v, want none", report.WildcardDeps)
	}
}
