package graph

import (
	"reflect"
	"testing"

	"github.com/convoyhq/convoy/pkg/manifest"
)

func TestNew_MergePrecedence(t *testing.T) {
	tests := []struct {
		name      string
		m         manifest.Manifest
		dep       string
		wantType  DepType
		wantRange string
	}{
		{
			name: "ProdOverridesDev",
			m: manifest.Manifest{
				Name:            "a",
				Dependencies:    map[string]string{"b": "^2.0.0"},
				DevDependencies: map[string]string{"b": "^1.0.0"},
			},
			dep:       "b",
			wantType:  DepProd,
			wantRange: "^2.0.0",
		},
		{
			name: "PeerOverridesDev",
			m: manifest.Manifest{
				Name:             "a",
				PeerDependencies: map[string]string{"b": ">=16"},
				DevDependencies:  map[string]string{"b": "^16.1.0"},
			},
			dep:       "b",
			wantType:  DepPeer,
			wantRange: ">=16",
		},
		{
			name: "ProdOverridesPeer",
			m: manifest.Manifest{
				Name:             "a",
				Dependencies:     map[string]string{"b": "1.2.3"},
				PeerDependencies: map[string]string{"b": ">=1"},
			},
			dep:       "b",
			wantType:  DepProd,
			wantRange: "1.2.3",
		},
		{
			name: "DevOnlyStaysDev",
			m: manifest.Manifest{
				Name:            "a",
				DevDependencies: map[string]string{"b": "^1.0.0"},
			},
			dep:       "b",
			wantType:  DepDev,
			wantRange: "^1.0.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New([]manifest.Manifest{tt.m})
			n, ok := g.Node("a")
			if !ok {
				t.Fatal("Node(a) not found")
			}
			if len(n.Deps) != 1 {
				t.Fatalf("len(Deps) = %d, want 1", len(n.Deps))
			}
			spec := n.Deps[tt.dep]
			if spec.Type != tt.wantType {
				t.Errorf("Type = %s, want %s", spec.Type, tt.wantType)
			}
			if spec.Range != tt.wantRange {
				t.Errorf("Range = %q, want %q", spec.Range, tt.wantRange)
			}
		})
	}
}

func TestNew_EdgesOnlyForGraphNodes(t *testing.T) {
	g := New([]manifest.Manifest{
		{Name: "a", Dependencies: map[string]string{"b": "^1.0.0", "left-pad": "*"}},
		{Name: "b"},
	})

	if deps := g.Dependents("b"); !reflect.DeepEqual(deps, []string{"a"}) {
		t.Errorf("Dependents(b) = %v, want [a]", deps)
	}
	// External dependency stays on the node but produces no edge.
	if deps := g.Dependents("left-pad"); len(deps) != 0 {
		t.Errorf("Dependents(left-pad) = %v, want empty", deps)
	}
	n, _ := g.Node("a")
	if _, ok := n.Deps["left-pad"]; !ok {
		t.Error("external dependency missing from node's Deps")
	}
}

func TestGraph_UnknownNameQueries(t *testing.T) {
	g := New([]manifest.Manifest{{Name: "a"}})

	if _, ok := g.Node("ghost"); ok {
		t.Error("Node(ghost) = ok, want not found")
	}
	if deps := g.Dependents("ghost"); len(deps) != 0 {
		t.Errorf("Dependents(ghost) = %v, want empty", deps)
	}
	if deps := g.Dependencies("ghost"); len(deps) != 0 {
		t.Errorf("Dependencies(ghost) = %v, want empty", deps)
	}
}

func TestGraph_Publishable(t *testing.T) {
	g := New([]manifest.Manifest{
		{Name: "pub", Version: "1.0.0"},
		{Name: "priv", Version: "0.1.0", Private: true},
	})

	pub, _ := g.Node("pub")
	if !pub.Publishable {
		t.Error("pub.Publishable = false, want true")
	}
	priv, _ := g.Node("priv")
	if priv.Publishable {
		t.Error("priv.Publishable = true, want false")
	}
}

func TestGraph_Dependencies(t *testing.T) {
	g := New([]manifest.Manifest{
		{Name: "app", Dependencies: map[string]string{"lib": "^1.0.0", "ext": "^2.0.0"}},
		{Name: "lib"},
	})

	if deps := g.Dependencies("app"); !reflect.DeepEqual(deps, []string{"lib"}) {
		t.Errorf("Dependencies(app) = %v, want [lib]", deps)
	}
}

func TestGraph_Names_InsertionOrder(t *testing.T) {
	g := New([]manifest.Manifest{{Name: "z"}, {Name: "a"}, {Name: "m"}})

	if names := g.Names(); !reflect.DeepEqual(names, []string{"z", "a", "m"}) {
		t.Errorf("Names() = %v, want [z a m]", names)
	}
	if g.Len() != 3 {
		t.Errorf("Len() = %d, want 3", g.Len())
	}
}
