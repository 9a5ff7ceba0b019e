package layout

// assignCoordinates positions every element.
//
// Each level is centered on the widest level by its summed member widths and
// filled left to right with spacing between members. Levels stack top to
// bottom with levelGap between them; cpd is reserved above the first level
// when a vertex there has incoming wiring and below the last level when a
// vertex there has outgoing wiring. Every element takes its level's height.
func (l *Layout) assignCoordinates(spacing, levelGap, cpd float64) {
	if len(l.Levels) == 0 {
		return
	}

	maxWidth := 0.0
	for i := range l.Levels {
		maxWidth = max(maxWidth, l.Levels[i].Width)
	}

	y := 0.0
	if l.hasWiring(&l.Levels[0], true) {
		y += cpd
	}
	right := maxWidth
	for i := range l.Levels {
		lv := &l.Levels[i]
		x := (maxWidth - lv.Width) / 2
		for _, id := range lv.Elements {
			e := &l.Elements[id]
			e.X, e.Y = x, y
			e.Height = lv.Height
			right = max(right, x+e.Width)
			x += e.Width + spacing
		}
		y += lv.Height
		if i < len(l.Levels)-1 {
			y += levelGap
		} else if l.hasWiring(lv, false) {
			y += cpd
		}
	}

	l.Width = right
	l.Height = y
}

// hasWiring reports whether a vertex of lv has incoming (in) or outgoing
// wiring.
func (l *Layout) hasWiring(lv *Level, in bool) bool {
	for _, id := range lv.Elements {
		e := &l.Elements[id]
		if !e.IsVertex() {
			continue
		}
		if in && len(e.In) > 0 || !in && len(e.Out) > 0 {
			return true
		}
	}
	return false
}
