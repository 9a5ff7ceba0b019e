package layout_test

import (
	"fmt"

	"github.com/matzehuels/leveling/pkg/dag"
	"github.com/matzehuels/leveling/pkg/layout"
)

func ExampleCompute() {
	g, _ := dag.New(dag.Adjacency[string]{
		{Label: "a", Successors: []string{"b", "c"}},
		{Label: "b", Successors: []string{"c"}},
	})

	l, err := layout.Compute(g)
	if err != nil {
		panic(err)
	}
	for _, b := range l.Boxes {
		fmt.Printf("%s: level %d at (%g, %g)\n", b.Label, b.Level, b.X, b.Y)
	}
	fmt.Println("routes:", len(l.Routes))
	fmt.Println("placeholders:", l.Placeholders())
	// Output:
	// a: level 0 at (0, 0)
	// b: level 1 at (0, 88)
	// c: level 2 at (0, 176)
	// routes: 3
	// placeholders: 1
}

func ExampleCompute_cycle() {
	g, _ := dag.New(dag.Adjacency[string]{
		{Label: "ping", Successors: []string{"pong"}},
		{Label: "pong", Successors: []string{"ping"}},
	})

	l, _ := layout.Compute(g)
	for _, r := range l.Routes {
		fmt.Printf("%s -> %s reversed=%v\n", g.Label(r.From), g.Label(r.To), r.Reversed)
	}
	// Output:
	// ping -> pong reversed=false
	// pong -> ping reversed=true
}

func ExampleNumericSizer() {
	size := layout.NumericSizer(layout.DefaultBoxHeight, layout.DefaultSizer)
	w, h := size("12")
	fmt.Println(w, h)
	// Output: 70 40
}
