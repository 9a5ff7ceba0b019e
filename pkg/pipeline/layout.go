package pipeline

import (
	"fmt"

	"github.com/matzehuels/leveling/pkg/dag"
	"github.com/matzehuels/leveling/pkg/graph"
	"github.com/matzehuels/leveling/pkg/layout"
	"github.com/matzehuels/leveling/pkg/render/nodelink"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout computes the layout of g and returns it in serialized form.
// Levels layouts carry boxes and routes; nodelink layouts carry the DOT of
// the same levels. Boxes are sized by display label and relabelled with it.
// Graphs larger than opts.MaxNodes or opts.MaxEdges are rejected before any
// work is done.
func GenerateLayout(g graph.Graph, opts Options) (graph.Layout, error) {
	opts.SetLayoutDefaults()
	if err := opts.CheckSize(len(g.Nodes), 0); err != nil {
		return graph.Layout{}, err
	}

	adj, err := g.Adjacency()
	if err != nil {
		return graph.Layout{}, err
	}
	dg, err := dag.New(adj)
	if err != nil {
		return graph.Layout{}, fmt.Errorf("build graph: %w", err)
	}
	if err := opts.CheckSize(dg.NodeCount(), dg.EdgeCount()); err != nil {
		return graph.Layout{}, err
	}

	labels := g.Labels()
	l, err := layout.Compute(dg,
		layout.WithSpacing(opts.Spacing),
		layout.WithLevelGap(opts.LevelGap),
		layout.WithControlPointDistance(opts.ControlPointDistance),
		layout.WithSizer(displaySizer(opts, labels)),
		layout.WithLogger(opts.Logger),
	)
	if err != nil {
		return graph.Layout{}, err
	}

	doc := graph.FromLayout(l, opts.Style)
	doc.Relabel(labels)
	if opts.IsNodelink() {
		dot := nodelink.ToDOT(doc, nodelink.Options{Detailed: opts.Detailed})
		return nodelink.Export(dot, doc, opts.Style), nil
	}
	return doc, nil
}

// displaySizer sizes a node by its display label rather than its ID.
func displaySizer(opts Options, labels map[string]string) layout.Sizer {
	base := layout.TextSizer(opts.CharWidth, opts.Padding, opts.BoxHeight)
	if opts.Sizing == SizingNumeric {
		base = layout.NumericSizer(opts.BoxHeight, base)
	}
	return func(id string) (float64, float64) {
		if label, ok := labels[id]; ok {
			return base(label)
		}
		return base(id)
	}
}
