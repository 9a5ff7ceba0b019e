package layout

// build creates one vertex per node and the placeholder chains between them,
// wiring every edge of the original adjacency.
//
// Vertices are created in node order, depth first along out-edges: a vertex
// registers in its level, then the subtree behind each out-edge is built
// before that edge is wired. This fixes the order of elements within levels.
func (l *Layout) build(sizes []size) {
	n := len(sizes)
	l.Vertices = make([]ElementID, n)
	for i := range l.Vertices {
		l.Vertices[i] = NoElement
	}

	type frame struct{ node, next int }

	for root := 0; root < n; root++ {
		if l.Vertices[root] != NoElement {
			continue
		}
		l.addVertex(root, sizes[root])
		stack := []frame{{node: root}}
		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			out := l.orig.Out[f.node]
			if f.next == len(out) {
				stack = stack[:len(stack)-1]
				continue
			}
			dst := out[f.next]
			if l.Vertices[dst] == NoElement {
				l.addVertex(dst, sizes[dst])
				stack = append(stack, frame{node: dst})
				continue
			}
			l.wire(f.node, dst)
			f.next++
		}
	}
}

func (l *Layout) addVertex(node int, s size) {
	l.Vertices[node] = l.add(Element{
		Kind:       KindVertex,
		Node:       node,
		Level:      l.NodeLevels[node],
		Width:      s.width,
		PrefHeight: s.height,
		Succ:       NoElement,
	})
}

func (l *Layout) addPlaceholder(level int, reversed bool, succ ElementID) ElementID {
	return l.add(Element{
		Kind:     KindPlaceholder,
		Node:     NoNode,
		Level:    level,
		Succ:     succ,
		Reversed: reversed,
	})
}

// add appends e to the arena and to its level, creating missing levels.
func (l *Layout) add(e Element) ElementID {
	for len(l.Levels) <= e.Level {
		l.Levels = append(l.Levels, Level{Index: len(l.Levels)})
	}
	id := ElementID(len(l.Elements))
	lv := &l.Levels[e.Level]
	e.Pos = len(lv.Elements)
	lv.Elements = append(lv.Elements, id)
	lv.Width += e.Width
	lv.Height = max(lv.Height, e.PrefHeight)
	l.Elements = append(l.Elements, e)
	return id
}

// wire connects the vertices of src and dst.
//
// An edge to the next level is direct. A longer downward edge gets one
// placeholder on every level in between. An edge that points up or stays on
// its level gets a reversed chain with one placeholder on every level from
// dst up to and including src, so even a self loop leaves and re-enters its
// box through a placeholder. The first of those placeholders sits on dst's
// own level, beside dst, not on the level below it.
func (l *Layout) wire(src, dst int) {
	sv, dv := l.Vertices[src], l.Vertices[dst]
	from, to := l.NodeLevels[src], l.NodeLevels[dst]

	switch {
	case to == from+1:
		l.Elements[sv].Out = append(l.Elements[sv].Out, dv)
		l.Elements[dv].In = append(l.Elements[dv].In, sv)

	case to > from+1:
		prev := NoElement
		for lvl := from + 1; lvl < to; lvl++ {
			id := l.addPlaceholder(lvl, false, NoElement)
			if prev == NoElement {
				l.Elements[sv].Out = append(l.Elements[sv].Out, id)
			} else {
				l.Elements[prev].Succ = id
			}
			prev = id
		}
		l.Elements[prev].Succ = dv
		l.Elements[dv].In = append(l.Elements[dv].In, prev)

	default:
		last := l.addPlaceholder(to, true, dv)
		l.Elements[dv].In = append(l.Elements[dv].In, last)
		for lvl := to + 1; lvl <= from; lvl++ {
			last = l.addPlaceholder(lvl, true, last)
		}
		l.Elements[sv].Out = append(l.Elements[sv].Out, last)
	}
}
