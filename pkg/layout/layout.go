package layout

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/leveling/pkg/dag"
	"github.com/matzehuels/leveling/pkg/dag/transform"
	lverrors "github.com/matzehuels/leveling/pkg/errors"
)

// ElementID addresses an [Element] in [Layout.Elements].
type ElementID int

// NoElement is the zero handle: no element.
const NoElement ElementID = -1

// NoNode is the [Element.Node] value of placeholders.
const NoNode = -1

// Kind distinguishes the two element variants.
type Kind uint8

const (
	// KindVertex is the drawn box of a graph node.
	KindVertex Kind = iota
	// KindPlaceholder is a zero-size relay point of an edge crossing a level.
	KindPlaceholder
)

func (k Kind) String() string {
	switch k {
	case KindVertex:
		return "vertex"
	case KindPlaceholder:
		return "placeholder"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Element is one positioned item of a level: a vertex or a placeholder.
//
// Vertices carry the node index and their wiring: In lists the elements
// feeding the vertex, Out the first element of every outgoing chain.
// Placeholders link forward through Succ; a chain ends at a vertex.
type Element struct {
	Kind  Kind
	Node  int // graph node of a vertex, NoNode for placeholders
	Level int
	Pos   int // index within the level

	X, Y          float64
	Width, Height float64
	PrefHeight    float64

	In, Out []ElementID

	Succ     ElementID
	Reversed bool // placeholder of a chain that runs upwards
}

// IsVertex reports whether e is a vertex.
func (e *Element) IsVertex() bool { return e.Kind == KindVertex }

// Level is an ordered row of elements sharing one level index.
type Level struct {
	Index    int
	Elements []ElementID
	Width    float64 // sum of member widths
	Height   float64 // max of member preferred heights
}

// Point is a position in layout coordinates. Y grows downwards.
type Point struct {
	X, Y float64
}

// Box is the drawn rectangle of a graph node.
type Box struct {
	Node   int
	Label  string
	Level  int
	X, Y   float64
	Width  float64
	Height float64
}

// Layout is the result of [Compute].
//
// Elements is an arena: vertices and placeholders reference each other by
// [ElementID]. Vertices maps every node to its vertex. Boxes and Routes are
// the renderer-facing view, one box per node and one route per edge.
type Layout struct {
	Elements []Element
	Levels   []Level
	Vertices []ElementID

	// NodeLevels holds the level of every node.
	NodeLevels []int
	// Feedback lists the edges removed to break cycles, in removal order.
	// They are drawn as reversed routes.
	Feedback []dag.Edge

	Boxes  []Box
	Routes []Route

	Width, Height float64

	orig *dag.Adj
}

// Element returns the element with the given handle.
func (l *Layout) Element(id ElementID) *Element { return &l.Elements[id] }

// Placeholders returns the number of placeholder elements.
func (l *Layout) Placeholders() int {
	n := 0
	for i := range l.Elements {
		if l.Elements[i].Kind == KindPlaceholder {
			n++
		}
	}
	return n
}

// Check verifies the computed levels: every edge of the input points down
// or lies on a cycle of the input, and no level is empty.
func (l *Layout) Check() error {
	if l.orig == nil {
		return nil
	}
	if err := transform.CheckIntegrity(l.orig, l.NodeLevels); err != nil {
		return err
	}
	return transform.CheckContiguous(l.NodeLevels)
}

// Compute lays out g: it breaks cycles, assigns and normalizes levels,
// inserts placeholder chains for edges spanning several levels or running
// upwards, orders the wiring of every vertex, assigns coordinates and
// routes every edge.
//
// Compute never modifies g. It returns an error only for invalid options or
// sizes; broken internal invariants panic.
func Compute[K comparable](g *dag.Graph[K], opts ...Option) (*Layout, error) {
	if g == nil {
		return nil, lverrors.New(lverrors.ErrCodeInvalidInput, "graph is nil")
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	labels := make([]string, g.NodeCount())
	for i := range labels {
		labels[i] = g.Text(i)
	}
	sizes, err := measure(labels, cfg.sizer)
	if err != nil {
		return nil, err
	}

	work := g.Adjacency()
	feedback := transform.BreakCycles(work)
	levels := transform.AssignLevels(work)
	cfg.logger.Debug("levels assigned",
		"nodes", g.NodeCount(), "edges", g.EdgeCount(), "feedback", len(feedback))

	l := &Layout{
		NodeLevels: levels,
		Feedback:   feedback,
		orig:       g.Adjacency(),
	}
	l.build(sizes)
	l.sortWiring()
	l.assignCoordinates(cfg.spacing, cfg.levelGap, cfg.cpd)
	l.routeEdges(cfg.cpd)
	l.collectBoxes(labels)

	cfg.logger.Debug("layout computed",
		"levels", len(l.Levels), "elements", len(l.Elements),
		"placeholders", l.Placeholders(), "width", l.Width, "height", l.Height)
	return l, nil
}

type size struct{ width, height float64 }

func measure(labels []string, sizer Sizer) ([]size, error) {
	sizes := make([]size, len(labels))
	for i, label := range labels {
		w, h := sizer(label)
		if !validSize(w) || !validSize(h) {
			return nil, lverrors.New(lverrors.ErrCodeInvalidOption,
				"sizer returned %gx%g for %q", w, h, label)
		}
		sizes[i] = size{w, h}
	}
	return sizes, nil
}

func validSize(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func (l *Layout) collectBoxes(labels []string) {
	l.Boxes = make([]Box, len(l.Vertices))
	for n, id := range l.Vertices {
		e := &l.Elements[id]
		l.Boxes[n] = Box{
			Node:   n,
			Label:  labels[n],
			Level:  e.Level,
			X:      e.X,
			Y:      e.Y,
			Width:  e.Width,
			Height: e.Height,
		}
	}
}

var discard = log.New(io.Discard)
