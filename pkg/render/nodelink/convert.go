package nodelink

import (
	"fmt"

	"github.com/matzehuels/leveling/pkg/graph"
)

// Export packages a DOT string as a serializable nodelink layout.
//
// Nodelink layouts don't carry positions; Graphviz computes them while
// rendering. The levels of the source layout are kept so that a cached
// nodelink layout still tells which node sits where.
func Export(dot string, src graph.Layout, style string) graph.Layout {
	return graph.Layout{
		VizType:   graph.VizTypeNodelink,
		DOT:       dot,
		Width:     src.Width,
		Height:    src.Height,
		Engine:    "dot",
		Style:     style,
		Levels:    src.Levels,
		Feedback:  src.Feedback,
		Crossings: src.Crossings,
	}
}

// Parse extracts the DOT string from a serialized nodelink layout.
//
// Returns an error if the layout is not a nodelink type or is missing the DOT string.
func Parse(layout graph.Layout) (string, error) {
	if layout.VizType != "" && layout.VizType != graph.VizTypeNodelink {
		return "", fmt.Errorf("invalid viz_type for nodelink layout: %q", layout.VizType)
	}
	if layout.DOT == "" {
		return "", fmt.Errorf("nodelink layout must contain DOT string")
	}
	return layout.DOT, nil
}
