// Package layout computes layered drawings of directed graphs.
//
// # Overview
//
// [Compute] takes a [dag.Graph] with arbitrary labels and places every node
// in a horizontal level, so that edges point downwards wherever the graph
// allows. The result is a [Layout] with one [Box] per node and one [Route]
// per edge, ready for a renderer.
//
// # Phases
//
//  1. Cycles are broken on a working copy of the graph (see
//     [transform.BreakCycles]); the original edges are kept for drawing.
//  2. Levels are assigned by longest path and normalized so that nodes sit
//     right above their nearest successor.
//  3. Every node becomes a vertex [Element]. Edges spanning more than one
//     level get a chain of zero-size placeholder elements, one per level
//     crossed. Edges that point up or stay on a level (the edges removed
//     in phase 1, and self loops) get a reversed chain that runs up from
//     the destination's level to the source's level.
//  4. The incoming and outgoing wiring of every vertex is sorted by where
//     the connected elements sit, which keeps nearby edges from crossing
//     at the box.
//  5. Levels are centered horizontally and stacked vertically.
//  6. Every edge is routed as a sequence of cubic curves and lines through
//     its placeholders.
//
// There is no global crossing minimization: element order within a level
// follows the order vertices and placeholders were created. Use
// [Layout.CountCrossings] to measure the result.
//
// # Geometry
//
// Coordinates grow right and down. Level height is the largest preferred
// height of its members; every element of a level is drawn with that
// height. Sizes come from a [Sizer]; [DefaultSizer] fits the label text and
// [NumericSizer] scales boxes with numeric labels.
//
// # Concurrency
//
// Compute holds no shared state. Independent graphs can be laid out in
// parallel; a single Layout must not be mutated concurrently.
//
// [dag.Graph]: github.com/matzehuels/leveling/pkg/dag.Graph
// [transform.BreakCycles]: github.com/matzehuels/leveling/pkg/dag/transform.BreakCycles
package layout
