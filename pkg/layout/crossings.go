package layout

import "slices"

// link is a wire between two elements on adjacent levels, as positions
// within the upper and the lower level.
type link struct{ upper, lower int }

// CountCrossings returns the number of wire crossings between adjacent
// levels, treating every wire as a straight segment between element
// positions. Wires within one level (the ends of reversed chains) are not
// counted.
//
// The engine orders wiring locally and does not minimize crossings; the
// count is a quality measure for comparing layouts.
func (l *Layout) CountCrossings() int {
	if len(l.Levels) < 2 {
		return 0
	}
	links := make([][]link, len(l.Levels)-1)
	add := func(a, b ElementID) {
		u, v := &l.Elements[a], &l.Elements[b]
		if u.Level > v.Level {
			u, v = v, u
		}
		if v.Level == u.Level+1 {
			links[u.Level] = append(links[u.Level], link{u.Pos, v.Pos})
		}
	}
	for id := range l.Elements {
		e := &l.Elements[id]
		if e.IsVertex() {
			for _, o := range e.Out {
				add(ElementID(id), o)
			}
		} else {
			add(ElementID(id), e.Succ)
		}
	}

	crossings := 0
	for i, ls := range links {
		crossings += countLevelCrossings(ls, len(l.Levels[i+1].Elements))
	}
	return crossings
}

// countLevelCrossings counts crossing pairs among links between two levels
// using a Fenwick tree, in O(E log V) for E links and V lower elements.
//
// Two links (u1,v1) and (u2,v2) cross if and only if
//
//	u1 < u2 AND v1 > v2
//
// which is the number of inversions of the lower positions once links are
// sorted by upper position. Links sharing an end never cross.
func countLevelCrossings(links []link, lowerWidth int) int {
	if len(links) < 2 {
		return 0
	}
	slices.SortFunc(links, func(a, b link) int {
		if a.upper != b.upper {
			return a.upper - b.upper
		}
		return a.lower - b.lower
	})

	fenwick := make([]int, lowerWidth+1)
	crossings, total := 0, 0
	for start := 0; start < len(links); {
		end := start
		for end < len(links) && links[end].upper == links[start].upper {
			end++
		}
		// Query the whole group first: links from one element do not cross.
		for _, e := range links[start:end] {
			lessOrEqual := 0
			for q := e.lower + 1; q > 0; q -= q & (-q) {
				lessOrEqual += fenwick[q]
			}
			crossings += total - lessOrEqual
		}
		for _, e := range links[start:end] {
			total++
			for idx := e.lower + 1; idx < len(fenwick); idx += idx & (-idx) {
				fenwick[idx]++
			}
		}
		start = end
	}
	return crossings
}
