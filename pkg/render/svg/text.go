package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/leveling/pkg/graph"
)

const (
	fontHeightRatio = 0.5
	fontWidthRatio  = 0.9
	fontCharWidth   = 0.6
	fontSizeMin     = 8.0
	fontSizeMax     = 14.0
)

// FontSize returns the label font size that fits the box.
func FontSize(b graph.Box) float64 {
	n := max(1, utf8.RuneCountInString(b.Label))
	byHeight := b.Height * fontHeightRatio
	byWidth := (b.Width * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

// TruncateLabel shortens the label with ".." when it cannot fit the box even
// at the minimum font size.
func TruncateLabel(b graph.Box) string {
	maxChars := max(3, int(b.Width*fontWidthRatio/(FontSize(b)*fontCharWidth)))
	if utf8.RuneCountInString(b.Label) <= maxChars {
		return b.Label
	}
	return string([]rune(b.Label)[:maxChars-2]) + ".."
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// PathData returns the SVG path data of a route. With curved set, cubic
// segments keep their control points; otherwise every segment becomes a
// straight line to its end point.
func PathData(r graph.Route, curved bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "M %.2f %.2f", r.Start.X, r.Start.Y)
	for _, s := range r.Segments {
		if curved && s.Kind == graph.SegmentCubic && s.C1 != nil && s.C2 != nil {
			fmt.Fprintf(&sb, " C %.2f %.2f %.2f %.2f %.2f %.2f", s.C1.X, s.C1.Y, s.C2.X, s.C2.Y, s.To.X, s.To.Y)
			continue
		}
		fmt.Fprintf(&sb, " L %.2f %.2f", s.To.X, s.To.Y)
	}
	return sb.String()
}
