// Package graph provides document types for input graphs and computed
// layouts.
//
// This package defines the wire format of leveling, used for graph files,
// API requests and responses, and cached layouts.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [Graph], [Layout]: Serialization types (this package)
//   - pkg/dag.Graph: Internal graph representation
//   - pkg/layout.Layout: Internal layout (element arena, positions)
//
// Use [Graph.Adjacency] and [FromLayout] to convert between them.
//
// # Constants
//
// This package is the single source of truth for visualization constants:
//
//	graph.VizTypeLevels     // "levels"
//	graph.VizTypeNodelink   // "nodelink"
//	graph.StyleSimple       // "simple"
//	graph.StyleCurved       // "curved"
//
// # Graph Documents
//
// Successors may be listed per node, as an edge list, or both:
//
//	{
//	  "nodes": [
//	    {"id": "app", "successors": ["lib"]},
//	    {"id": "lib", "label": "libfoo"}
//	  ],
//	  "edges": [{"from": "lib", "to": "app"}]
//	}
//
// Order is significant. It decides node order, which breaks ties in cycle
// breaking and places elements within levels.
//
// # Layout Documents
//
// A levels layout lists boxes, routes as cubic and line segments, the
// placeholders they pass, and the feedback edges removed to break cycles:
//
//	doc := graph.FromLayout(l, graph.StyleCurved)
//	data, _ := graph.MarshalLayout(doc)
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
