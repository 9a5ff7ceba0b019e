// Package transform turns an arbitrary directed graph into a levelled one.
//
// # Overview
//
// Level assignment needs an acyclic graph, but inputs may contain cycles,
// self loops and repeated edges. The transforms here run on a mutable
// working copy ([dag.Adj]) and leave the original edge set alone; the layout
// later reintroduces the removed edges as reversed routes.
//
// # Cycle Breaking
//
// [BreakCycles] repeatedly removes the edge that closes the shortest cycle,
// measured with [BackPathLength]. It is a greedy heuristic: the result is a
// feedback edge set, not a minimum one (that problem is NP-hard). Its
// tie-breaking follows node and predecessor order, and rendered layouts
// depend on that order, so the heuristic is kept as is.
//
// # Level Assignment
//
// [AssignMinLevels] places every node one level below its deepest
// predecessor. [NormalizeLevels] then pulls nodes down to sit directly above
// their nearest successor. [AssignLevels] runs both.
//
// # Integrity
//
// [CheckIntegrity] verifies that every original edge either points down or
// belongs to a cycle, and [CheckContiguous] that no level is empty.
//
// # Usage
//
//	work := g.Adjacency()
//	feedback := transform.BreakCycles(work)
//	levels := transform.AssignLevels(work)
//	if err := transform.CheckIntegrity(g.Adjacency(), levels); err != nil {
//	    // programming error
//	}
//
// All traversals use explicit stacks or queues, so deep graphs cannot
// overflow the goroutine stack.
package transform
