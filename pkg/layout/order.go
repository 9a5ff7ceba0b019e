package layout

import "slices"

// sortWiring orders the In and Out lists of every vertex by where the
// connected elements sit, so that anchors on the box edge follow the
// direction their edges leave in.
//
// Neighbors on other levels sort by position. Neighbors on the vertex's own
// level (the ends of reversed chains) sort by their offset from the vertex:
// left neighbors before right ones, and on each side the nearer neighbor
// goes outwards. A same-level neighbor on the left sorts before neighbors on
// other levels, one on the right after them.
//
// The sort is stable, so equal keys keep their build order.
func (l *Layout) sortWiring() {
	for _, id := range l.Vertices {
		e := &l.Elements[id]
		cmp := l.wiringCmp(e.Level, e.Pos)
		slices.SortStableFunc(e.In, cmp)
		slices.SortStableFunc(e.Out, cmp)
	}
}

func (l *Layout) wiringCmp(level, pos int) func(a, b ElementID) int {
	return func(a, b ElementID) int {
		u, v := &l.Elements[a], &l.Elements[b]
		switch {
		case u.Level == level && v.Level == level:
			du, dv := u.Pos-pos, v.Pos-pos
			if du < 0 {
				if dv > 0 {
					return -1
				}
				return dv - du
			}
			if dv < 0 {
				return 1
			}
			return dv - du
		case u.Level == level:
			return u.Pos - pos
		case v.Level == level:
			return pos - v.Pos
		default:
			return u.Pos - v.Pos
		}
	}
}
