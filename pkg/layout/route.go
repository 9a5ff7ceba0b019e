package layout

// SegmentKind tells curves from straight lines.
type SegmentKind uint8

const (
	// SegmentCubic is a cubic Bézier curve with control points C1 and C2.
	SegmentCubic SegmentKind = iota
	// SegmentLine is a straight line.
	SegmentLine
)

func (k SegmentKind) String() string {
	if k == SegmentLine {
		return "line"
	}
	return "cubic"
}

// Segment is one piece of a route, drawn from the end of the previous
// segment (or the route start) to To.
type Segment struct {
	Kind   SegmentKind
	C1, C2 Point // control points, cubic segments only
	To     Point
}

// Route is the drawn path of one edge of the input graph.
type Route struct {
	From, To int // graph nodes
	Reversed bool
	Start    Point
	Segments []Segment
	// Via lists the placeholders the route passes, in drawing order.
	Via []ElementID
}

// End returns the point the route arrives at.
func (r *Route) End() Point {
	if len(r.Segments) == 0 {
		return r.Start
	}
	return r.Segments[len(r.Segments)-1].To
}

// routeEdges builds one route per outgoing wire of every vertex, in node
// order and wiring order.
//
// A route leaves its source on the bottom edge of the box, at the position
// of the wire among all outgoing wires spread evenly over the box width, and
// enters its destination on the top edge by the same rule for incoming
// wires. Forward chains pass every placeholder top to bottom. Reversed chains
// pass them bottom to top and curve back down into the destination, which
// draws a loop next to the boxes.
func (l *Layout) routeEdges(cpd float64) {
	used := make(map[[2]ElementID]int)
	for _, id := range l.Vertices {
		src := &l.Elements[id]
		for i, next := range src.Out {
			l.Routes = append(l.Routes, l.route(id, i, next, cpd, used))
		}
	}
}

func (l *Layout) route(from ElementID, ordinal int, next ElementID, cpd float64, used map[[2]ElementID]int) Route {
	src := &l.Elements[from]
	p := Point{
		X: src.X + src.Width*float64(ordinal+1)/float64(len(src.Out)+1),
		Y: src.Y + src.Height,
	}
	r := Route{From: src.Node, Start: p}
	last := from

	if n := &l.Elements[next]; !n.IsVertex() && n.Reversed {
		r.Reversed = true
		first := true
		for !l.Elements[next].IsVertex() {
			d := &l.Elements[next]
			top, bottom := Point{d.X, d.Y}, Point{d.X, d.Y + d.Height}
			r.Segments = append(r.Segments,
				curve(p, bottom, !first, false, cpd),
				Segment{Kind: SegmentLine, To: top})
			r.Via = append(r.Via, next)
			p, last, next = top, next, d.Succ
			first = false
		}
		r.Segments = append(r.Segments, curve(p, l.inAnchor(next, last, used), true, true, cpd))
	} else {
		for !l.Elements[next].IsVertex() {
			d := &l.Elements[next]
			top, bottom := Point{d.X, d.Y}, Point{d.X, d.Y + d.Height}
			r.Segments = append(r.Segments,
				curve(p, top, false, true, cpd),
				Segment{Kind: SegmentLine, To: bottom})
			r.Via = append(r.Via, next)
			p, last, next = bottom, next, d.Succ
		}
		r.Segments = append(r.Segments, curve(p, l.inAnchor(next, last, used), false, true, cpd))
	}

	r.To = l.Elements[next].Node
	return r
}

// inAnchor returns the entry point on the top edge of vertex dst for the
// wire coming from element prev. Repeated wires from the same element take
// successive slots.
func (l *Layout) inAnchor(dst, prev ElementID, used map[[2]ElementID]int) Point {
	d := &l.Elements[dst]
	key := [2]ElementID{dst, prev}
	skip := used[key]
	used[key] = skip + 1

	slot := 0
	for i, id := range d.In {
		if id != prev {
			continue
		}
		slot = i
		if skip == 0 {
			break
		}
		skip--
	}
	return Point{
		X: d.X + d.Width*float64(slot+1)/float64(len(d.In)+1),
		Y: d.Y,
	}
}

// curve returns a cubic segment from src to dst. Control points sit cpd
// above (in) or below (!in) their end point.
func curve(src, dst Point, srcIn, dstIn bool, cpd float64) Segment {
	return Segment{
		Kind: SegmentCubic,
		C1:   Point{src.X, src.Y + offset(srcIn, cpd)},
		C2:   Point{dst.X, dst.Y + offset(dstIn, cpd)},
		To:   dst,
	}
}

func offset(in bool, cpd float64) float64 {
	if in {
		return -cpd
	}
	return cpd
}
