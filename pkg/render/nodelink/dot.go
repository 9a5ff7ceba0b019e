package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/leveling/pkg/graph"
	"github.com/matzehuels/leveling/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the level and computed position to node labels.
	// When false, only the display label is shown.
	Detailed bool
}

// ToDOT converts a levels layout to Graphviz DOT. Every level becomes a
// rank=same group in left-to-right order, so Graphviz keeps the computed
// levels. Reversed routes are emitted against the layer direction with
// dir=back, which draws them in their original direction.
func ToDOT(l graph.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  ordering=out;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	boxes := make(map[string]graph.Box, len(l.Boxes))
	for _, b := range l.Boxes {
		boxes[b.ID] = b
	}

	for i, level := range l.Levels {
		if len(level) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "  subgraph level%d {\n    rank=same;\n", i)
		for _, id := range level {
			b, ok := boxes[id]
			if !ok {
				b = graph.Box{ID: id, Label: id, Level: i}
			}
			fmt.Fprintf(&buf, "    %q [label=%q];\n", id, fmtLabel(b, opts.Detailed))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, r := range l.Routes {
		if r.Reversed {
			fmt.Fprintf(&buf, "  %q -> %q [dir=back, style=dashed];\n", r.To, r.From)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", r.From, r.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(b graph.Box, detailed bool) string {
	label := b.Label
	if label == "" {
		label = b.ID
	}
	if !detailed {
		return label
	}
	return strings.Join([]string{
		label,
		fmt.Sprintf("level: %d", b.Level),
		fmt.Sprintf("x: %.1f, y: %.1f", b.X, b.Y),
	}, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz svg tag, which sizes in points, with
// one whose width and height match the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
