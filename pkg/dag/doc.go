// Package dag provides the graph ingestion layer of the layered layout
// engine.
//
// # Overview
//
// Callers describe a directed graph as an [Adjacency]: an ordered list of
// labels with their ordered successors. [New] ingests it into an immutable
// [Graph] whose nodes are addressed by dense integer indices. Labels may be
// any comparable type; the zero value is rejected as a "null" label.
//
// Despite the package name, input graphs may contain cycles, self loops and
// repeated edges. Nothing is deduplicated.
//
// # Working Copies
//
// The layout runs in two phases: levels are computed on an acyclic working
// copy, then render elements are built from the full original edge set.
// [Graph.Adjacency] derives a fresh mutable [Adj] on every call, so the
// working copy can lose its feedback edges while the original stays intact:
//
//	g, err := dag.New(dag.Adjacency[string]{
//	    {Label: "a", Successors: []string{"b"}},
//	    {Label: "b", Successors: []string{"a"}},
//	})
//	work := g.Adjacency()          // mutated by cycle breaking
//	orig := g.Adjacency()          // untouched
//
// # Concurrency
//
// A [Graph] is read-only after [New] returns and may be shared. [Adj] values
// are not safe for concurrent use.
//
// # Related Packages
//
// The [transform] subpackage breaks cycles and assigns levels.
//
// [transform]: github.com/matzehuels/leveling/pkg/dag/transform
package dag
