package transform

import "github.com/matzehuels/leveling/pkg/dag"

// NoPath is returned by [BackPathLength] when the target is unreachable.
const NoPath = -1

// BreakCycles removes edges from a until it is acyclic and returns the
// removed (feedback) edges in removal order.
//
// Each round looks at every edge v→u, visiting nodes u in index order and
// their predecessors v in a.In order, and measures the shortest path from u
// back to v. The edge closing the shortest cycle is removed; ties go to the
// first edge found. A self loop has back-path length 0 and is always
// removed first. Rounds stop once no edge lies on a cycle.
//
// The result is a greedy feedback edge set, not a minimum one. Each round
// removes one edge, so BreakCycles terminates after at most |E| rounds.
//
// # Performance
//
// A round runs one breadth-first search per edge, O(E·(V+E)), and there can
// be up to |E| rounds. That is fine for diagram-sized graphs (up to a few
// hundred nodes) and the reason this heuristic is not used for larger ones.
func BreakCycles(a *dag.Adj) []dag.Edge {
	var removed []dag.Edge
	for {
		best, src, dst := NoPath, -1, -1
	search:
		for u := range a.In {
			for _, v := range a.In[u] {
				l := BackPathLength(a, u, v)
				if l == NoPath || (best != NoPath && l >= best) {
					continue
				}
				best, src, dst = l, v, u
				if best == 0 {
					break search
				}
			}
		}
		if src < 0 {
			return removed
		}
		a.RemoveEdge(src, dst)
		removed = append(removed, dag.Edge{From: src, To: dst})
	}
}

// BackPathLength returns the number of edges on the shortest directed path
// from → to, 0 if from == to, or [NoPath] if to is unreachable.
//
// The search uses an explicit queue with a visited set owned by this call,
// so its depth is bounded by the graph size rather than the call stack.
func BackPathLength(a *dag.Adj, from, to int) int {
	if from == to {
		return 0
	}
	dist := make([]int, a.Len())
	for i := range dist {
		dist[i] = NoPath
	}
	dist[from] = 0
	queue := []int{from}
	for head := 0; head < len(queue); head++ {
		n := queue[head]
		for _, m := range a.Out[n] {
			if dist[m] != NoPath {
				continue
			}
			dist[m] = dist[n] + 1
			if m == to {
				return dist[m]
			}
			queue = append(queue, m)
		}
	}
	return NoPath
}
