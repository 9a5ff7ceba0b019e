// Package nodelink renders levels layouts as Graphviz node-link diagrams.
//
// # Overview
//
// This package hands a computed layout to Graphviz. Nodes keep the levels
// computed by the layout engine, one rank per level, while Graphviz routes
// the edges itself. It is an alternative to the svg sink when a
// traditional diagram is preferred, or when the DOT source is wanted for
// other tools.
//
// # Usage
//
// Convert a serialized layout to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(doc, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0) // 2x scale
//
// # DOT Format
//
// The generated DOT uses top-to-bottom layout (rankdir=TB) with rounded box
// nodes. Each level is a rank=same subgraph listed in computed order.
// Edges the cycle breaker reversed point up the levels and are drawn dashed
// with dir=back, so arrows still show the original direction.
//
// [Export] and [Parse] move DOT in and out of the serialized
// [graph.Layout] for caching and the HTTP API.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
//
// [graph.Layout]: github.com/matzehuels/leveling/pkg/graph.Layout
package nodelink
