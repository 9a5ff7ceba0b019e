package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/leveling/pkg/dag"
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
	return graph.FromLayout(l, graph.StyleSimple)
}

func TestToDOT_Basic(t *testing.T) {
	doc := computeDoc(t, dag.Adjacency[string]{
		{Label: "a", Successors: []string{"b", "c"}},
		{Label: "b"},
		{Label: "c"},
	})

	dot := ToDOT(doc, Options{})

	for _, want := range []string{
		"digraph G",
		"subgraph level0 {\n    rank=same;\n    \"a\" [label=\"a\"];\n  }",
		"subgraph level1 {\n    rank=same;\n    \"b\" [label=\"b\"];\n    \"c\" [label=\"c\"];\n  }",
		`"a" -> "b";`,
		`"a" -> "c";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q\nGot:\n%s", want, dot)
		}
	}
}

func TestToDOT_Reversed(t *testing.T) {
	doc := computeDoc(t, dag.Adjacency[string]{
		{Label: "a", Successors: []string{"b"}},
		{Label: "b", Successors: []string{"a"}},
	})

	dot := ToDOT(doc, Options{})

	if !strings.Contains(dot, `"a" -> "b" [dir=back, style=dashed];`) {
		t.Errorf("ToDOT() output missing reversed edge\nGot:\n%s", dot)
	}
}

func TestToDOT_Detailed(t *testing.T) {
	doc := computeDoc(t, dag.Adjacency[string]{{Label: "pkg", Successors: []string{"dep"}}})
	doc.Relabel(map[string]string{"dep": "Dependency"})

	dot := ToDOT(doc, Options{Detailed: true})

	for _, want := range []string{`label="Dependency\nlevel: 1`, `level: 0`, `x: `} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() detailed output missing %q\nGot:\n%s", want, dot)
		}
	}
}

func TestExportParse(t *testing.T) {
	doc := computeDoc(t, dag.Adjacency[string]{{Label: "a", Successors: []string{"b"}}})
	dot := ToDOT(doc, Options{})

	nl := Export(dot, doc, "simple")
	if !nl.IsNodelink() || nl.Engine != "dot" || len(nl.Levels) != 2 {
		t.Errorf("Export() = %+v", nl)
	}
	got, err := Parse(nl)
	if err != nil || got != dot {
		t.Errorf("Parse() = %q, %v", got, err)
	}

	if _, err := Parse(doc); err == nil {
		t.Error("Parse() accepted a levels layout")
	}
	if _, err := Parse(graph.Layout{VizType: graph.VizTypeNodelink}); err == nil {
		t.Error("Parse() accepted a layout without DOT")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 116.00" width="62" height="116"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}
	if got := normalizeViewBox([]byte("<svg/>")); string(got) != "<svg/>" {
		t.Errorf("normalizeViewBox() changed svg without viewBox: %s", got)
	}
}
