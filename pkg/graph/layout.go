package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/leveling/pkg/layout"
)

// =============================================================================
// Layout - Serialized Visualization
// =============================================================================

// Layout is the serialization format for computed layouts, used for JSON
// output, API responses and caching.
//
// A "levels" layout carries positioned boxes and routes. A "nodelink"
// layout carries a Graphviz DOT string instead.
type Layout struct {
	VizType string  `json:"viz_type"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Style   string  `json:"style,omitempty"`

	Levels       [][]string    `json:"levels,omitempty"` // node IDs per level, left to right
	Boxes        []Box         `json:"boxes,omitempty"`
	Routes       []Route       `json:"routes,omitempty"`
	Placeholders []Placeholder `json:"placeholders,omitempty"`
	Feedback     []Edge        `json:"feedback,omitempty"`
	Crossings    int           `json:"crossings"`

	// Nodelink-specific
	DOT    string `json:"dot,omitempty"`
	Engine string `json:"engine,omitempty"`
}

// IsLevels returns true if this is a levelled box layout.
func (l *Layout) IsLevels() bool { return l.VizType == VizTypeLevels }

// IsNodelink returns true if this is a nodelink layout.
func (l *Layout) IsNodelink() bool { return l.VizType == VizTypeNodelink }

// Box is the positioned rectangle of one node.
type Box struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Level  int     `json:"level"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Point is a position in layout coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Segment is one piece of a route. C1 and C2 are set for cubic segments.
type Segment struct {
	Kind string `json:"kind"`
	C1   *Point `json:"c1,omitempty"`
	C2   *Point `json:"c2,omitempty"`
	To   Point  `json:"to"`
}

// Route is the drawn path of one edge.
type Route struct {
	From     string    `json:"from"`
	To       string    `json:"to"`
	Reversed bool      `json:"reversed,omitempty"`
	Start    Point     `json:"start"`
	Segments []Segment `json:"segments"`
}

// Placeholder is the position of a relay point of a long or reversed edge.
type Placeholder struct {
	Level    int     `json:"level"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Height   float64 `json:"height"`
	Reversed bool    `json:"reversed,omitempty"`
}

// =============================================================================
// Internal ↔ Serialized Conversion
// =============================================================================

// FromLayout converts a computed layout into its serialization format. Box
// labels become node IDs; use [Layout.Relabel] to attach display labels.
func FromLayout(l *layout.Layout, style string) Layout {
	out := Layout{
		VizType:   VizTypeLevels,
		Width:     l.Width,
		Height:    l.Height,
		Style:     style,
		Levels:    make([][]string, len(l.Levels)),
		Boxes:     make([]Box, len(l.Boxes)),
		Routes:    make([]Route, len(l.Routes)),
		Crossings: l.CountCrossings(),
	}

	ids := make([]string, len(l.Boxes))
	for i, b := range l.Boxes {
		ids[i] = b.Label
		out.Boxes[i] = Box{
			ID: b.Label, Label: b.Label, Level: b.Level,
			X: b.X, Y: b.Y, Width: b.Width, Height: b.Height,
		}
	}

	for i, lv := range l.Levels {
		out.Levels[i] = []string{}
		for _, id := range lv.Elements {
			e := l.Element(id)
			if e.IsVertex() {
				out.Levels[i] = append(out.Levels[i], ids[e.Node])
				continue
			}
			out.Placeholders = append(out.Placeholders, Placeholder{
				Level: e.Level, X: e.X, Y: e.Y, Height: e.Height, Reversed: e.Reversed,
			})
		}
	}

	for i, r := range l.Routes {
		out.Routes[i] = Route{
			From:     ids[r.From],
			To:       ids[r.To],
			Reversed: r.Reversed,
			Start:    Point(r.Start),
			Segments: make([]Segment, len(r.Segments)),
		}
		for j, s := range r.Segments {
			seg := Segment{Kind: SegmentLine, To: Point(s.To)}
			if s.Kind == layout.SegmentCubic {
				c1, c2 := Point(s.C1), Point(s.C2)
				seg.Kind, seg.C1, seg.C2 = SegmentCubic, &c1, &c2
			}
			out.Routes[i].Segments[j] = seg
		}
	}

	for _, e := range l.Feedback {
		out.Feedback = append(out.Feedback, Edge{From: ids[e.From], To: ids[e.To]})
	}
	return out
}

// Relabel replaces the display label of boxes whose ID is in labels.
func (l *Layout) Relabel(labels map[string]string) {
	for i := range l.Boxes {
		if label, ok := labels[l.Boxes[i].ID]; ok {
			l.Boxes[i].Label = label
		}
	}
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates that required fields are present for the viz type.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}

	if l.VizType == "" {
		l.VizType = VizTypeLevels
	}

	switch {
	case l.IsLevels():
		for _, r := range l.Routes {
			if len(r.Segments) == 0 {
				return Layout{}, fmt.Errorf("route %s->%s has no segments", r.From, r.To)
			}
		}
	case l.IsNodelink():
		if l.DOT == "" {
			return Layout{}, fmt.Errorf("nodelink layout must contain DOT string")
		}
	default:
		return Layout{}, fmt.Errorf("unknown viz type %q", l.VizType)
	}

	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
