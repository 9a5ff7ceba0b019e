package transform

import (
	"errors"
	"fmt"

	"github.com/matzehuels/leveling/pkg/dag"
)

var (
	// ErrBrokenEdge is returned by [CheckIntegrity] for an edge that does
	// not point downwards and is not part of any cycle.
	ErrBrokenEdge = errors.New("edge points upwards outside of a cycle")

	// ErrLevelGap is returned by [CheckContiguous] when some level between
	// 0 and the maximum level has no node.
	ErrLevelGap = errors.New("levels are not contiguous")
)

// CheckIntegrity verifies levels against the original adjacency orig: for
// every edge u→v, either level(v) > level(u), or v reaches u (the edge takes
// part in a cycle of the input). The first violating edge is reported.
func CheckIntegrity(orig *dag.Adj, levels []int) error {
	for u, out := range orig.Out {
		for _, v := range out {
			if levels[v] > levels[u] {
				continue
			}
			if !orig.Reaches(v, u) {
				return fmt.Errorf("%w: %d -> %d (levels %d -> %d)", ErrBrokenEdge, u, v, levels[u], levels[v])
			}
		}
	}
	return nil
}

// CheckContiguous verifies that every level from 0 to the maximum level is
// used by at least one node. An empty slice is contiguous.
func CheckContiguous(levels []int) error {
	if len(levels) == 0 {
		return nil
	}
	maxLevel := 0
	for _, l := range levels {
		if l < 0 || l == Unassigned {
			return fmt.Errorf("%w: invalid level %d", ErrLevelGap, l)
		}
		maxLevel = max(maxLevel, l)
	}
	used := make([]bool, maxLevel+1)
	for _, l := range levels {
		used[l] = true
	}
	for l, ok := range used {
		if !ok {
			return fmt.Errorf("%w: level %d is empty", ErrLevelGap, l)
		}
	}
	return nil
}
