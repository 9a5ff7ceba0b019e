package graph

import (
	"fmt"
	"slices"

	"github.com/matzehuels/leveling/pkg/dag"
	lverrors "github.com/matzehuels/leveling/pkg/errors"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Visualization types.
const (
	VizTypeLevels   = "levels"
	VizTypeNodelink = "nodelink"
)

// Visual styles for rendering.
const (
	StyleSimple = "simple"
	StyleCurved = "curved"
)

// Segment kinds in serialized routes.
const (
	SegmentCubic = "cubic"
	SegmentLine  = "line"
)

// =============================================================================
// Graph - Input Document
// =============================================================================

// Graph is the canonical document format for input graphs. The same
// structure is read from JSON, TOML and YAML.
//
// Successors can be listed on the nodes, as edges, or both; order matters,
// because node and edge order decide how ties are broken in the layout.
type Graph struct {
	Nodes []Node `json:"nodes" toml:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges,omitempty" toml:"edges,omitempty" yaml:"edges,omitempty"`
}

// Node is one node of a [Graph] document.
type Node struct {
	ID         string   `json:"id" toml:"id" yaml:"id"`
	Label      string   `json:"label,omitempty" toml:"label,omitempty" yaml:"label,omitempty"` // Display label (defaults to ID)
	Successors []string `json:"successors,omitempty" toml:"successors,omitempty" yaml:"successors,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge is a directed edge between two node IDs.
type Edge struct {
	From string `json:"from" toml:"from" yaml:"from"`
	To   string `json:"to" toml:"to" yaml:"to"`
}

// =============================================================================
// Graph ↔ Adjacency Conversion
// =============================================================================

// Adjacency converts the document into an ordered adjacency for
// [dag.New]. Nodes come first in document order with their successors, then
// every edge is appended to the successors of its source; sources that are
// not listed as nodes are added in order of first mention.
//
// IDs are checked with [lverrors.ValidateLabel]. Duplicate node IDs are
// rejected; duplicate edges and self loops are kept.
func (g Graph) Adjacency() (dag.Adjacency[string], error) {
	adj := make(dag.Adjacency[string], 0, len(g.Nodes))
	index := make(map[string]int, len(g.Nodes))

	for _, n := range g.Nodes {
		if err := validateID(n.ID); err != nil {
			return nil, err
		}
		if _, dup := index[n.ID]; dup {
			return nil, lverrors.New(lverrors.ErrCodeInvalidInput, "duplicate node %q", n.ID)
		}
		for _, s := range n.Successors {
			if err := validateID(s); err != nil {
				return nil, fmt.Errorf("successor of %q: %w", n.ID, err)
			}
		}
		index[n.ID] = len(adj)
		adj = append(adj, dag.Entry[string]{Label: n.ID, Successors: slices.Clone(n.Successors)})
	}

	for _, e := range g.Edges {
		if err := validateID(e.From); err != nil {
			return nil, fmt.Errorf("edge %q->%q: %w", e.From, e.To, err)
		}
		if err := validateID(e.To); err != nil {
			return nil, fmt.Errorf("edge %q->%q: %w", e.From, e.To, err)
		}
		i, ok := index[e.From]
		if !ok {
			i = len(adj)
			index[e.From] = i
			adj = append(adj, dag.Entry[string]{Label: e.From})
		}
		adj[i].Successors = append(adj[i].Successors, e.To)
	}
	return adj, nil
}

// Labels returns the display labels that differ from their node ID.
func (g Graph) Labels() map[string]string {
	labels := make(map[string]string)
	for i := range g.Nodes {
		if n := &g.Nodes[i]; n.Label != "" && n.Label != n.ID {
			labels[n.ID] = n.Label
		}
	}
	return labels
}

// FromAdjacency converts an adjacency into a document with successors
// listed on the nodes.
func FromAdjacency(adj dag.Adjacency[string]) Graph {
	out := Graph{Nodes: make([]Node, len(adj))}
	for i, e := range adj {
		out.Nodes[i] = Node{ID: e.Label, Successors: slices.Clone(e.Successors)}
	}
	return out
}

func validateID(id string) error {
	if err := lverrors.ValidateLabel(id); err != nil {
		return fmt.Errorf("node %q: %w", id, err)
	}
	return nil
}
