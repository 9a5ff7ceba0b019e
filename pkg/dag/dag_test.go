package dag

import (
	"errors"
	"slices"
	"testing"

	lverrors "github.com/matzehuels/leveling/pkg/errors"
)

func TestNew_NodeOrder(t *testing.T) {
	// Entry labels come first, then successors in order of first mention.
	g, err := New(Adjacency[string]{
		{Label: "fc", Successors: []string{"fe", "c", "fk"}},
		{Label: "c", Successors: []string{"e", "k"}},
		{Label: "d", Successors: []string{"k"}},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	want := []string{"fc", "c", "d", "fe", "fk", "e", "k"}
	if got := g.Labels(); !slices.Equal(got, want) {
		t.Errorf("Labels() = %v, want %v", got, want)
	}
	if g.EdgeCount() != 6 {
		t.Errorf("EdgeCount() = %d, want 6", g.EdgeCount())
	}
}

func TestNew_KeepsSelfLoopsAndDuplicates(t *testing.T) {
	g, err := New(Adjacency[string]{
		{Label: "x", Successors: []string{"x", "y", "y"}},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	a := g.Adjacency()
	if got, want := a.Out[0], []int{0, 1, 1}; !slices.Equal(got, want) {
		t.Errorf("Out[x] = %v, want %v", got, want)
	}
	if got, want := a.In[1], []int{0, 0}; !slices.Equal(got, want) {
		t.Errorf("In[y] = %v, want %v", got, want)
	}
	if got, want := a.In[0], []int{0}; !slices.Equal(got, want) {
		t.Errorf("In[x] = %v, want %v", got, want)
	}
}

func TestNew_RejectsZeroLabel(t *testing.T) {
	tests := []struct {
		name string
		adj  Adjacency[string]
	}{
		{"entry label", Adjacency[string]{{Label: "", Successors: []string{"a"}}}},
		{"successor label", Adjacency[string]{{Label: "a", Successors: []string{""}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.adj)
			if !errors.Is(err, ErrInvalidLabel) {
				t.Fatalf("New() error = %v, want ErrInvalidLabel", err)
			}
			if !lverrors.Is(err, lverrors.ErrCodeInvalidLabel) {
				t.Errorf("code = %v, want %v", lverrors.GetCode(err), lverrors.ErrCodeInvalidLabel)
			}
		})
	}
}

func TestNew_NilPointerLabel(t *testing.T) {
	type payload struct{ name string }
	p := &payload{"p"}
	_, err := New(Adjacency[*payload]{{Label: p, Successors: []*payload{nil}}})
	if !errors.Is(err, ErrInvalidLabel) {
		t.Fatalf("New() error = %v, want ErrInvalidLabel", err)
	}
}

func TestNew_Empty(t *testing.T) {
	g, err := New(Adjacency[string](nil))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if g.NodeCount() != 0 || g.EdgeCount() != 0 {
		t.Errorf("empty graph has %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}
	if err := g.Adjacency().Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestGraph_IndexAndText(t *testing.T) {
	g, _ := New(Adjacency[int]{{Label: 7, Successors: []int{8}}})
	i, ok := g.Index(8)
	if !ok || i != 1 {
		t.Fatalf("Index(8) = %d, %v", i, ok)
	}
	if g.Text(i) != "8" {
		t.Errorf("Text() = %q, want %q", g.Text(i), "8")
	}
	if _, ok := g.Index(9); ok {
		t.Error("Index(9) should not be found")
	}
}

func TestAdjacency_Independent(t *testing.T) {
	g, _ := New(Adjacency[string]{{Label: "a", Successors: []string{"b"}}})
	work := g.Adjacency()
	work.RemoveEdge(0, 1)

	if work.EdgeCount() != 0 {
		t.Errorf("working copy EdgeCount() = %d, want 0", work.EdgeCount())
	}
	if g.Adjacency().EdgeCount() != 1 {
		t.Error("removing from a working copy changed the original")
	}
}

func TestAdj_RemoveEdgeFirstOccurrence(t *testing.T) {
	a := NewAdj(2)
	a.AddEdge(0, 1)
	a.AddEdge(0, 1)
	a.RemoveEdge(0, 1)

	if len(a.Out[0]) != 1 || len(a.In[1]) != 1 {
		t.Errorf("after RemoveEdge: Out=%v In=%v, want one edge left", a.Out[0], a.In[1])
	}

	a.RemoveEdge(1, 0) // missing edge is a no-op
	if a.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", a.EdgeCount())
	}
}

func TestAdj_Clone(t *testing.T) {
	a := NewAdj(2)
	a.AddEdge(0, 1)
	c := a.Clone()
	c.RemoveEdge(0, 1)
	if a.EdgeCount() != 1 {
		t.Error("Clone() shares storage with the original")
	}
}

func TestAdj_Validate(t *testing.T) {
	tests := []struct {
		name    string
		edges   [][2]int
		n       int
		wantErr bool
	}{
		{"chain", [][2]int{{0, 1}, {1, 2}}, 3, false},
		{"diamond", [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}}, 4, false},
		{"two cycle", [][2]int{{0, 1}, {1, 0}}, 2, true},
		{"self loop", [][2]int{{0, 0}}, 1, true},
		{"cycle off the root", [][2]int{{0, 1}, {1, 2}, {2, 1}}, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAdj(tt.n)
			for _, e := range tt.edges {
				a.AddEdge(e[0], e[1])
			}
			err := a.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrGraphHasCycle) {
				t.Errorf("Validate() = %v, want ErrGraphHasCycle", err)
			}
		})
	}
}

func TestAdj_ReachesAndSources(t *testing.T) {
	a := NewAdj(4)
	a.AddEdge(0, 1)
	a.AddEdge(1, 2)
	a.AddEdge(3, 2)

	if !a.Reaches(0, 2) {
		t.Error("Reaches(0, 2) = false")
	}
	if a.Reaches(2, 0) {
		t.Error("Reaches(2, 0) = true")
	}
	if !a.Reaches(3, 3) {
		t.Error("a node always reaches itself")
	}
	if got, want := a.Sources(), []int{0, 3}; !slices.Equal(got, want) {
		t.Errorf("Sources() = %v, want %v", got, want)
	}
}
