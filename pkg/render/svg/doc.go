// Package svg draws levels layouts as SVG.
//
// # Overview
//
// [Render] takes a serialized [graph.Layout] and writes one rectangle and
// one centered label per box, plus one path per edge route. Path data
// follows the route segments, so a route from (50, 40) over one placeholder
// becomes:
//
//	M 50.00 40.00 C 50.00 64.00 80.00 64.00 80.00 88.00 L 80.00 128.00 ...
//
// Reversed routes (edges the cycle breaker turned around) are dashed.
//
// # Styles
//
// A [Style] controls the appearance:
//
//   - [Curved]: rounded boxes, routes keep their cubic control points (default)
//   - [Simple]: square boxes, routes become polylines through their anchors
//
// Use [ParseStyle] to select one by name.
//
// # Options
//
//   - [WithStyle]: choose the style
//   - [WithPlaceholders]: mark the relay points of long and reversed edges
//   - [WithMargin]: blank border around the drawing (default [DefaultMargin])
//
// [RenderPDF] and [RenderPNG] convert the result through rsvg-convert.
//
// [graph.Layout]: github.com/matzehuels/leveling/pkg/graph.Layout
package svg
