package transform

import (
	"fmt"
	"math"

	"github.com/matzehuels/leveling/pkg/dag"
)

// Unassigned marks a node whose level has not been computed yet.
const Unassigned = math.MaxInt

// AssignLevels computes the level of every node of the acyclic adjacency a:
// [AssignMinLevels] followed by [NormalizeLevels]. The returned slice is
// indexed by node.
//
// AssignLevels panics if a contains a cycle. Run [BreakCycles] first.
func AssignLevels(a *dag.Adj) []int {
	levels := AssignMinLevels(a)
	NormalizeLevels(a, levels)
	return levels
}

// AssignMinLevels assigns every node the length of the longest path reaching
// it from a source: sources get level 0, every other node one more than the
// maximum level of its predecessors. Levels are memoized, so shared
// predecessors are computed once.
//
// The traversal uses an explicit stack of frames instead of recursion.
// It panics if it meets a node that is still being computed, which only
// happens when a has a cycle.
func AssignMinLevels(a *dag.Adj) []int {
	levels := make([]int, a.Len())
	for i := range levels {
		levels[i] = Unassigned
	}

	type frame struct{ node, next, max int }

	visiting := make([]bool, a.Len())
	for start := range levels {
		if levels[start] != Unassigned {
			continue
		}
		visiting[start] = true
		stack := []frame{{node: start, max: -1}}
		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			if f.next < len(a.In[f.node]) {
				p := a.In[f.node][f.next]
				if levels[p] == Unassigned {
					if visiting[p] {
						panic(fmt.Sprintf("transform: node %d is on a cycle; break cycles before assigning levels", p))
					}
					visiting[p] = true
					stack = append(stack, frame{node: p, max: -1})
					continue
				}
				f.max = max(f.max, levels[p])
				f.next++
				continue
			}
			levels[f.node] = f.max + 1
			visiting[f.node] = false
			stack = stack[:len(stack)-1]
		}
	}
	return levels
}

// NormalizeLevels pulls nodes down towards their successors. Starting from
// every node on level 0 (each weakly connected component of a DAG has one),
// successors are normalized first, then a node with successors moves to one
// level above its nearest successor. Sinks keep their level.
//
// This removes vertical gaps between a node and its closest successor, so a
// source that only feeds a deep node is drawn right above it instead of at
// the top. Levels stay contiguous from 0, because the longest path of each
// component keeps its spacing.
//
// Normalization never moves a node up. NormalizeLevels panics if the
// computed level would not exceed the current one, or if it reaches a node
// without an assigned level.
func NormalizeLevels(a *dag.Adj, levels []int) {
	type frame struct{ node, next, min int }

	done := make([]bool, a.Len())
	active := make([]bool, a.Len())
	for root := range levels {
		if levels[root] != 0 || done[root] {
			continue
		}
		active[root] = true
		stack := []frame{{node: root, min: Unassigned}}
		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			if f.next < len(a.Out[f.node]) {
				s := a.Out[f.node][f.next]
				if !done[s] {
					if active[s] {
						panic(fmt.Sprintf("transform: node %d is on a cycle; break cycles before normalizing levels", s))
					}
					active[s] = true
					stack = append(stack, frame{node: s, min: Unassigned})
					continue
				}
				f.min = min(f.min, levels[s])
				f.next++
				continue
			}

			n := f.node
			if levels[n] == Unassigned {
				panic(fmt.Sprintf("transform: node %d has no level", n))
			}
			if f.min != Unassigned {
				if f.min <= levels[n] {
					panic(fmt.Sprintf("transform: node %d at level %d has a successor at level %d", n, levels[n], f.min))
				}
				levels[n] = f.min - 1
			}
			done[n] = true
			active[n] = false
			stack = stack[:len(stack)-1]
		}
	}
}
