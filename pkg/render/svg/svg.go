package svg

import (
	"bytes"
	"context"
	"fmt"

	lverrors "github.com/matzehuels/leveling/pkg/errors"
	"github.com/matzehuels/leveling/pkg/graph"
	"github.com/matzehuels/leveling/pkg/render"
)

// DefaultMargin is the blank border around the drawing.
const DefaultMargin = 16.0

type Option func(*renderer)

type renderer struct {
	style        Style
	placeholders bool
	margin       float64
}

func WithStyle(s Style) Option    { return func(r *renderer) { r.style = s } }
func WithPlaceholders() Option    { return func(r *renderer) { r.placeholders = true } }
func WithMargin(m float64) Option { return func(r *renderer) { r.margin = m } }

func newRenderer(opts ...Option) renderer {
	r := renderer{style: Curved{}, margin: DefaultMargin}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Render draws a levels layout as SVG. Routes are drawn beneath the boxes so
// that edges appear to enter them.
func Render(l graph.Layout, opts ...Option) ([]byte, error) {
	if !l.IsLevels() {
		return nil, lverrors.New(lverrors.ErrCodeUnsupported, "svg renders levels layouts, got %q", l.VizType)
	}
	r := newRenderer(opts...)

	w, h := l.Width+2*r.margin, l.Height+2*r.margin
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	r.style.RenderDefs(&buf)
	fmt.Fprintf(&buf, `  <g transform="translate(%.1f %.1f)">`+"\n", r.margin, r.margin)

	for _, rt := range l.Routes {
		r.style.RenderRoute(&buf, rt)
	}
	if r.placeholders {
		for _, p := range l.Placeholders {
			r.style.RenderPlaceholder(&buf, p)
		}
	}
	for _, b := range l.Boxes {
		r.style.RenderBox(&buf, b)
	}
	for _, b := range l.Boxes {
		r.style.RenderLabel(&buf, b)
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes(), nil
}

// RenderPDF renders the layout as PDF via SVG conversion.
func RenderPDF(ctx context.Context, l graph.Layout, opts ...Option) ([]byte, error) {
	data, err := Render(l, opts...)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, data)
}

// RenderPNG renders the layout as PNG via SVG conversion at the given scale.
func RenderPNG(ctx context.Context, l graph.Layout, scale float64, opts ...Option) ([]byte, error) {
	data, err := Render(l, opts...)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, data, scale)
}
