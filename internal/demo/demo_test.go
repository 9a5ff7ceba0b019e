package demo

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/leveling/pkg/dag"
	"github.com/matzehuels/leveling/pkg/layout"
)

func TestSamplesLayOut(t *testing.T) {
	for _, s := range Samples() {
		t.Run(s.Name, func(t *testing.T) {
			g, err := dag.New(s.Graph)
			if err != nil {
				t.Fatalf("dag.New() error = %v", err)
			}
			l, err := layout.Compute(g)
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if err := l.Check(); err != nil {
				t.Errorf("Check() error = %v", err)
			}
		})
	}
}

func TestBuilderCollapsesDuplicates(t *testing.T) {
	b := builder{}
	b.connect("b", "z")
	b.connect("b", "a")
	b.connect("b", "z")
	b.connect("a", "b")

	want := dag.Adjacency[string]{
		{Label: "a", Successors: []string{"b"}},
		{Label: "b", Successors: []string{"a", "z"}},
	}
	if diff := cmp.Diff(want, b.adjacency()); diff != "" {
		t.Errorf("adjacency() mismatch (-want +got):\n%s", diff)
	}
}

func TestLookup(t *testing.T) {
	s, ok := Lookup("loops")
	if !ok || len(s.Graph) != 3 {
		t.Errorf("Lookup(loops) = %+v, %v", s, ok)
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("Lookup(nope) succeeded")
	}
	if got := len(Names()); got != len(Samples()) {
		t.Errorf("len(Names()) = %d", got)
	}
}

func TestRandom(t *testing.T) {
	a := Random(NewRand(7), 12, 10)
	b := Random(NewRand(7), 12, 10)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed gave different graphs:\n%s", diff)
	}

	edges := 0
	for _, e := range a {
		edges += len(e.Successors)
	}
	if edges == 0 || edges > 10 {
		t.Errorf("got %d edges, want 1..10", edges)
	}
}

func TestRandomGraphsLayOut(t *testing.T) {
	rng := NewRand(1)
	for i := range 200 {
		adj := Random(rng, 12, 10)
		g, err := dag.New(adj)
		if err != nil {
			t.Fatalf("graph %d: %v", i, err)
		}
		l, err := layout.Compute(g)
		if err != nil {
			t.Fatalf("graph %d: Compute() error = %v", i, err)
		}
		if err := l.Check(); err != nil {
			t.Fatalf("graph %d: %v\n%v", i, err, adj)
		}
	}
}
