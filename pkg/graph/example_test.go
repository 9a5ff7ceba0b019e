package graph_test

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/leveling/pkg/dag"
	"github.com/matzehuels/leveling/pkg/graph"
)

func ExampleWriteGraph() {
	doc := graph.FromAdjacency(dag.Adjacency[string]{
		{Label: "app", Successors: []string{"lib"}},
	})

	var buf bytes.Buffer
	if err := graph.WriteGraph(doc, &buf); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Print(buf.String())
	// Output:
	// {
	//   "nodes": [
	//     {
	//       "id": "app",
	//       "successors": [
	//         "lib"
	//       ]
	//     }
	//   ]
	// }
}

func ExampleGraph_Adjacency() {
	doc, _ := graph.ReadGraph(strings.NewReader(`{
	  "nodes": [{"id": "a", "successors": ["b"]}],
	  "edges": [{"from": "b", "to": "a"}]
	}`))

	adj, err := doc.Adjacency()
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	for _, e := range adj {
		fmt.Println(e.Label, e.Successors)
	}
	// Output:
	// a [b]
	// b [a]
}
