package svg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/leveling/pkg/dag"
	lverrors "github.com/matzehuels/leveling/pkg/errors"
	"github.com/matzehuels/leveling/pkg/graph"
	"github.com/matzehuels/leveling/pkg/layout"
)

func computeDoc(t *testing.T, adj dag.Adjacency[string]) graph.Layout {
	t.Helper()
	g, err := dag.New(adj)
	if err != nil {
		t.Fatal(err)
	}
	l, err := layout.Compute(g)
	if err != nil {
		t.Fatal(err)
	}
	return graph.FromLayout(l, graph.StyleCurved)
}

func TestPathData(t *testing.T) {
	r := graph.Route{
		From: "a", To: "b",
		Start: graph.Point{X: 10, Y: 40},
		Segments: []graph.Segment{
			{Kind: graph.SegmentCubic, C1: &graph.Point{X: 10, Y: 64}, C2: &graph.Point{X: 20, Y: 64}, To: graph.Point{X: 20, Y: 88}},
			{Kind: graph.SegmentLine, To: graph.Point{X: 20, Y: 128}},
		},
	}
	tests := []struct {
		name   string
		curved bool
		want   string
	}{
		{"curved", true, "M 10.00 40.00 C 10.00 64.00 20.00 64.00 20.00 88.00 L 20.00 128.00"},
		{"simple", false, "M 10.00 40.00 L 20.00 88.00 L 20.00 128.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PathData(r, tt.curved); got != tt.want {
				t.Errorf("PathData() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRender(t *testing.T) {
	doc := computeDoc(t, dag.Adjacency[string]{
		{Label: "a", Successors: []string{"b", "c"}},
		{Label: "b", Successors: []string{"c", "a"}},
	})

	out, err := Render(doc, WithPlaceholders())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	s := string(out)

	if !strings.HasPrefix(s, "<svg") || !strings.HasSuffix(s, "</svg>\n") {
		t.Errorf("Render() is not a complete svg document:\n%s", s)
	}
	if got := strings.Count(s, `class="box"`); got != 3 {
		t.Errorf("rendered %d boxes, want 3", got)
	}
	if got := strings.Count(s, `class="edge"`); got != 4 {
		t.Errorf("rendered %d edges, want 4", got)
	}
	if got := strings.Count(s, `stroke-dasharray`); got != 1 {
		t.Errorf("rendered %d dashed edges, want 1", got)
	}
	if got := strings.Count(s, `class="placeholder"`); got != len(doc.Placeholders) {
		t.Errorf("rendered %d placeholders, want %d", got, len(doc.Placeholders))
	}
	if strings.Index(s, `class="edge"`) > strings.Index(s, `class="box"`) {
		t.Error("edges must be drawn beneath boxes")
	}
}

func TestRender_Styles(t *testing.T) {
	doc := computeDoc(t, dag.Adjacency[string]{{Label: "a", Successors: []string{"b"}}})

	curved, _ := Render(doc, WithStyle(Curved{}))
	simple, _ := Render(doc, WithStyle(Simple{}))

	if !bytes.Contains(curved, []byte(" C ")) || !bytes.Contains(curved, []byte(`rx="6"`)) {
		t.Errorf("curved output lacks cubic paths or rounded boxes:\n%s", curved)
	}
	if bytes.Contains(simple, []byte(" C ")) || bytes.Contains(simple, []byte(`rx=`)) {
		t.Errorf("simple output has cubic paths or rounded boxes:\n%s", simple)
	}
	if bytes.Contains(simple, []byte(`class="placeholder"`)) {
		t.Error("placeholders drawn without WithPlaceholders")
	}
}

func TestRender_Margin(t *testing.T) {
	doc := graph.Layout{VizType: graph.VizTypeLevels, Width: 100, Height: 50}
	out, err := Render(doc, WithMargin(0))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(out, []byte(`viewBox="0 0 100.0 50.0"`)) {
		t.Errorf("unexpected viewBox:\n%s", out)
	}
}

func TestRender_Nodelink(t *testing.T) {
	_, err := Render(graph.Layout{VizType: graph.VizTypeNodelink, DOT: "digraph {}"})
	if !lverrors.Is(err, lverrors.ErrCodeUnsupported) {
		t.Errorf("Render() error = %v, want UNSUPPORTED", err)
	}
}

func TestRenderLabel_Escapes(t *testing.T) {
	var buf bytes.Buffer
	Simple{}.RenderLabel(&buf, graph.Box{ID: "x", Label: "a<b", Width: 80, Height: 40})
	Simple{}.RenderBox(&buf, graph.Box{ID: "x&y", Width: 80, Height: 40})
	s := buf.String()
	for _, want := range []string{"a&lt;b", `id="box-x&amp;y"`} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q:\n%s", want, s)
		}
	}
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		label string
		width float64
		want  string
	}{
		{"short", 100, "short"},
		{"a-rather-long-package-name", 40, "a-rat.."},
		{"ünïcödé-label-that-is-long", 40, "ünïcö.."},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got := TruncateLabel(graph.Box{Label: tt.label, Width: tt.width, Height: 40})
			if got != tt.want {
				t.Errorf("TruncateLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		name    string
		want    Style
		wantErr bool
	}{
		{"", Curved{}, false},
		{"curved", Curved{}, false},
		{"simple", Simple{}, false},
		{"handdrawn", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStyle(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStyle() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseStyle() = %T, want %T", got, tt.want)
			}
			if tt.wantErr && !lverrors.Is(err, lverrors.ErrCodeInvalidStyle) {
				t.Errorf("ParseStyle() error code = %s", lverrors.GetCode(err))
			}
		})
	}
}
