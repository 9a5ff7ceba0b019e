package io_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/leveling/pkg/io"
)

func ExampleRead() {
	g, err := io.Read(strings.NewReader(`
app: [lib, log]
lib: [log]
log: []
`), io.FormatYAML)
	if err != nil {
		panic(err)
	}
	adj, _ := g.Adjacency()
	for _, n := range adj {
		fmt.Println(n.Label, n.Successors)
	}
	// Output:
	// app [lib log]
	// lib [log]
	// log []
}
