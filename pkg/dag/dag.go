package dag

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"slices"

	lverrors "github.com/matzehuels/leveling/pkg/errors"
)

var (
	// ErrInvalidLabel is returned by [New] when a label is the zero value of
	// its type (empty string, nil pointer, ...). Every node needs a label.
	ErrInvalidLabel = errors.New("node label must not be the zero value")

	// ErrUnknownNode is returned by lookups for labels that are not part of
	// the graph.
	ErrUnknownNode = errors.New("unknown node")

	// ErrGraphHasCycle is returned by [Adj.Validate] when a directed cycle is
	// detected. Cycles are detected using depth-first search with
	// white/gray/black coloring.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// Entry is one row of an adjacency: a label and its ordered successors.
type Entry[K comparable] struct {
	Label      K
	Successors []K
}

// Adjacency maps node labels to ordered successor labels. It is a slice
// rather than a map because iteration order determines node order, and node
// order is a legitimate input to the layout (differing orders yield
// differing, individually valid layouts).
type Adjacency[K comparable] []Entry[K]

// FromMap converts a Go map into an [Adjacency] with keys in sorted order.
// Successor order is kept as given.
func FromMap[K cmp.Ordered](m map[K][]K) Adjacency[K] {
	adj := make(Adjacency[K], 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		adj = append(adj, Entry[K]{Label: k, Successors: m[k]})
	}
	return adj
}

// Edge is a directed edge between two node indices.
type Edge struct {
	From int
	To   int
}

// Graph is the immutable ingested form of an [Adjacency]. Nodes are addressed
// by dense indices in order of first mention. The edge list is the original
// adjacency; it is never modified, so cycle-broken working copies can always
// be told apart from it.
//
// The zero value is not usable - use New to create a Graph.
type Graph[K comparable] struct {
	labels []K
	index  map[K]int
	edges  []Edge
}

// New ingests adj. Nodes are created in two passes so that node order does
// not depend on edge order: first every entry label, then every successor
// label not seen yet, each in order of first mention. Edges are added after
// all nodes exist, keeping self loops and repeated edges as separate
// entries.
//
// Returns an error wrapping ErrInvalidLabel (code INVALID_LABEL) if any label
// is the zero value of K.
func New[K comparable](adj Adjacency[K]) (*Graph[K], error) {
	var zero K
	g := &Graph[K]{index: make(map[K]int, len(adj))}

	for _, e := range adj {
		if e.Label == zero {
			return nil, invalidLabel()
		}
		g.ensure(e.Label)
	}
	for _, e := range adj {
		for _, s := range e.Successors {
			if s == zero {
				return nil, invalidLabel()
			}
			g.ensure(s)
		}
	}

	for _, e := range adj {
		from := g.index[e.Label]
		for _, s := range e.Successors {
			g.edges = append(g.edges, Edge{From: from, To: g.index[s]})
		}
	}
	return g, nil
}

func invalidLabel() error {
	return lverrors.Wrap(lverrors.ErrCodeInvalidLabel, ErrInvalidLabel, "ingest graph")
}

func (g *Graph[K]) ensure(label K) {
	if _, ok := g.index[label]; ok {
		return
	}
	g.index[label] = len(g.labels)
	g.labels = append(g.labels, label)
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph[K]) NodeCount() int { return len(g.labels) }

// EdgeCount returns the number of edges, counting duplicates and self loops.
func (g *Graph[K]) EdgeCount() int { return len(g.edges) }

// Label returns the label of node i.
func (g *Graph[K]) Label(i int) K { return g.labels[i] }

// Labels returns a copy of all labels in node order.
func (g *Graph[K]) Labels() []K { return slices.Clone(g.labels) }

// Text returns the display text of node i. Labels implementing fmt.Stringer
// use String; everything else is formatted with %v.
func (g *Graph[K]) Text(i int) string { return fmt.Sprint(g.labels[i]) }

// Index returns the index of the node with the given label.
func (g *Graph[K]) Index(label K) (int, bool) {
	i, ok := g.index[label]
	return i, ok
}

// Edges returns a copy of the original edge list in insertion order.
func (g *Graph[K]) Edges() []Edge { return slices.Clone(g.edges) }

// Adjacency derives a fresh mutable adjacency from the original edge list.
// Each call returns an independent value, so one copy can be cycle-broken
// while another still reflects the full input.
func (g *Graph[K]) Adjacency() *Adj {
	a := NewAdj(len(g.labels))
	for _, e := range g.edges {
		a.AddEdge(e.From, e.To)
	}
	return a
}

// Adj is a mutable ordered adjacency over node indices. Out[i] and In[i]
// list successors and predecessors of node i in insertion order; duplicates
// and self loops appear as separate entries.
//
// Adj is not safe for concurrent use.
type Adj struct {
	Out [][]int
	In  [][]int
}

// NewAdj creates an adjacency with n nodes and no edges.
func NewAdj(n int) *Adj {
	return &Adj{Out: make([][]int, n), In: make([][]int, n)}
}

// Len returns the number of nodes.
func (a *Adj) Len() int { return len(a.Out) }

// AddEdge appends the edge from→to to both endpoint lists.
func (a *Adj) AddEdge(from, to int) {
	a.Out[from] = append(a.Out[from], to)
	a.In[to] = append(a.In[to], from)
}

// RemoveEdge removes the first occurrence of from→to from both endpoint
// lists. No error is returned if the edge does not exist. If multiple edges
// exist between the same nodes, only the first is removed.
func (a *Adj) RemoveEdge(from, to int) {
	a.Out[from] = removeFirst(a.Out[from], to)
	a.In[to] = removeFirst(a.In[to], from)
}

func removeFirst(s []int, v int) []int {
	if i := slices.Index(s, v); i >= 0 {
		return slices.Delete(s, i, i+1)
	}
	return s
}

// EdgeCount returns the number of edges.
func (a *Adj) EdgeCount() int {
	n := 0
	for _, out := range a.Out {
		n += len(out)
	}
	return n
}

// Edges returns all edges ordered by source node, then successor order.
func (a *Adj) Edges() []Edge {
	edges := make([]Edge, 0, a.EdgeCount())
	for from, out := range a.Out {
		for _, to := range out {
			edges = append(edges, Edge{From: from, To: to})
		}
	}
	return edges
}

// Clone returns a deep copy.
func (a *Adj) Clone() *Adj {
	c := &Adj{Out: make([][]int, len(a.Out)), In: make([][]int, len(a.In))}
	for i := range a.Out {
		c.Out[i] = slices.Clone(a.Out[i])
		c.In[i] = slices.Clone(a.In[i])
	}
	return c
}

// Sources returns the nodes without incoming edges, in node order.
func (a *Adj) Sources() []int {
	var out []int
	for i, in := range a.In {
		if len(in) == 0 {
			out = append(out, i)
		}
	}
	return out
}

// Reaches reports whether a directed path from → to exists. A node always
// reaches itself.
func (a *Adj) Reaches(from, to int) bool {
	if from == to {
		return true
	}
	seen := make([]bool, a.Len())
	stack := []int{from}
	seen[from] = true
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, m := range a.Out[n] {
			if m == to {
				return true
			}
			if !seen[m] {
				seen[m] = true
				stack = append(stack, m)
			}
		}
	}
	return false
}

// Validate returns ErrGraphHasCycle if the adjacency contains a directed
// cycle (self loops included). Runs in O(N+E) time.
func (a *Adj) Validate() error {
	const (
		white = iota
		gray
		black
	)

	type frame struct{ node, next int }

	color := make([]int, a.Len())
	for root := range a.Out {
		if color[root] != white {
			continue
		}
		color[root] = gray
		stack := []frame{{node: root}}
		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			if f.next == len(a.Out[f.node]) {
				color[f.node] = black
				stack = stack[:len(stack)-1]
				continue
			}
			child := a.Out[f.node][f.next]
			f.next++
			switch color[child] {
			case white:
				color[child] = gray
				stack = append(stack, frame{node: child})
			case gray:
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}
