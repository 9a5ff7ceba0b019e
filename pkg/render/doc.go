// Package render turns computed layouts into pictures.
//
// # Overview
//
// Rendering works on the serialized [graph.Layout], so a layout can be
// computed once, cached, and drawn later in any format:
//
//   - [svg]: draws boxes, labels and edge routes as SVG
//   - [nodelink]: exports the levels as Graphviz DOT and lets Graphviz draw it
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg). Both sinks use them for their PDF and PNG output.
//
//	data := svg.Render(doc)
//	pdf, err := render.ToPDF(ctx, data)
//	png, err := render.ToPNG(ctx, data, 2.0) // 2x scale
//
// When rsvg-convert is missing the conversions return an error coded
// UNSUPPORTED; [Available] checks for it up front.
//
// [graph.Layout]: github.com/matzehuels/leveling/pkg/graph.Layout
// [svg]: github.com/matzehuels/leveling/pkg/render/svg
// [nodelink]: github.com/matzehuels/leveling/pkg/render/nodelink
package render
