package svg_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/leveling/pkg/dag"
	"github.com/matzehuels/leveling/pkg/graph"
	"github.com/matzehuels/leveling/pkg/layout"
	"github.com/matzehuels/leveling/pkg/render/svg"
)

func ExampleRender() {
	g, _ := dag.New(dag.Adjacency[string]{
		{Label: "app", Successors: []string{"lib"}},
		{Label: "lib"},
	})
	l, _ := layout.Compute(g)

	out, err := svg.Render(graph.FromLayout(l, graph.StyleSimple), svg.WithStyle(svg.Simple{}))
	if err != nil {
		panic(err)
	}
	fmt.Println("boxes:", strings.Count(string(out), `class="box"`))
	fmt.Println("edges:", strings.Count(string(out), `class="edge"`))
	// Output:
	// boxes: 2
	// edges: 1
}
