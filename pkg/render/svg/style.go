package svg

import (
	"bytes"
	"fmt"

	lverrors "github.com/matzehuels/leveling/pkg/errors"
	"github.com/matzehuels/leveling/pkg/graph"
)

// Style defines the visual appearance of a rendered layout.
// Implementations control how boxes, routes, labels and placeholders are drawn.
type Style interface {
	// RenderDefs writes SVG <defs> content (markers, filters).
	RenderDefs(buf *bytes.Buffer)
	// RenderBox writes the shape of a single box.
	RenderBox(buf *bytes.Buffer, b graph.Box)
	// RenderRoute writes the path of a single edge.
	RenderRoute(buf *bytes.Buffer, r graph.Route)
	// RenderLabel writes the centered text of a box.
	RenderLabel(buf *bytes.Buffer, b graph.Box)
	// RenderPlaceholder writes the marker of a relay point.
	RenderPlaceholder(buf *bytes.Buffer, p graph.Placeholder)
}

// ParseStyle returns the style with the given name.
func ParseStyle(name string) (Style, error) {
	switch name {
	case "", graph.StyleCurved:
		return Curved{}, nil
	case graph.StyleSimple:
		return Simple{}, nil
	default:
		return nil, lverrors.New(lverrors.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: %s, %s)", name, graph.StyleSimple, graph.StyleCurved)
	}
}

const arrowDefs = `  <defs>
    <marker id="arrow" viewBox="0 0 10 10" refX="10" refY="5" markerWidth="6" markerHeight="6" orient="auto-start-reverse">
      <path d="M 0 0 L 10 5 L 0 10 z" fill="#333"/>
    </marker>
  </defs>
`

// Simple draws square boxes and polyline routes through the anchor points.
type Simple struct{}

func (Simple) RenderDefs(buf *bytes.Buffer) { buf.WriteString(arrowDefs) }

func (Simple) RenderBox(buf *bytes.Buffer, b graph.Box) {
	renderRect(buf, b, 0)
}

func (Simple) RenderRoute(buf *bytes.Buffer, r graph.Route) {
	renderPath(buf, r, PathData(r, false))
}

func (Simple) RenderLabel(buf *bytes.Buffer, b graph.Box) { renderLabel(buf, b) }

func (Simple) RenderPlaceholder(buf *bytes.Buffer, p graph.Placeholder) {
	renderPlaceholder(buf, p)
}

// Curved draws rounded boxes and smooth cubic routes.
type Curved struct{}

func (Curved) RenderDefs(buf *bytes.Buffer) { buf.WriteString(arrowDefs) }

func (Curved) RenderBox(buf *bytes.Buffer, b graph.Box) {
	renderRect(buf, b, 6)
}

func (Curved) RenderRoute(buf *bytes.Buffer, r graph.Route) {
	renderPath(buf, r, PathData(r, true))
}

func (Curved) RenderLabel(buf *bytes.Buffer, b graph.Box) { renderLabel(buf, b) }

func (Curved) RenderPlaceholder(buf *bytes.Buffer, p graph.Placeholder) {
	renderPlaceholder(buf, p)
}

func renderRect(buf *bytes.Buffer, b graph.Box, radius float64) {
	fmt.Fprintf(buf, `  <rect id="box-%s" class="box" x="%.2f" y="%.2f" width="%.2f" height="%.2f"`,
		EscapeXML(b.ID), b.X, b.Y, b.Width, b.Height)
	if radius > 0 {
		fmt.Fprintf(buf, ` rx="%.0f" ry="%.0f"`, radius, radius)
	}
	buf.WriteString(` fill="white" stroke="#333" stroke-width="1.5"/>` + "\n")
}

func renderPath(buf *bytes.Buffer, r graph.Route, d string) {
	fmt.Fprintf(buf, `  <path class="edge" data-from="%s" data-to="%s" d="%s" fill="none" stroke="#555" stroke-width="1.2"`,
		EscapeXML(r.From), EscapeXML(r.To), d)
	if r.Reversed {
		buf.WriteString(` stroke-dasharray="5,3"`)
	}
	buf.WriteString(` marker-end="url(#arrow)"/>` + "\n")
}

func renderLabel(buf *bytes.Buffer, b graph.Box) {
	label := TruncateLabel(b)
	fmt.Fprintf(buf, `  <text class="label" x="%.2f" y="%.2f" font-family="monospace" font-size="%.1f" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		b.X+b.Width/2, b.Y+b.Height/2, FontSize(b), EscapeXML(label))
}

func renderPlaceholder(buf *bytes.Buffer, p graph.Placeholder) {
	color := "#999"
	if p.Reversed {
		color = "#c66"
	}
	fmt.Fprintf(buf, `  <line class="placeholder" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="3" stroke-linecap="round"/>`+"\n",
		p.X, p.Y, p.X, p.Y+p.Height, color)
}
