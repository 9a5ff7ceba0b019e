// Package demo holds sample graphs and a random graph generator for trying
// out the layout engine.
package demo

import (
	"maps"
	"math/rand/v2"
	"slices"
	"strconv"

	"github.com/matzehuels/leveling/pkg/dag"
)

// Sample is a named graph.
type Sample struct {
	Name        string
	Description string
	Graph       dag.Adjacency[string]
}

// builder collects edges as sorted sets, so duplicate edges collapse and
// node order is lexicographic.
type builder map[string]map[string]struct{}

func (b builder) connect(src, dst string) {
	if b[src] == nil {
		b[src] = make(map[string]struct{})
	}
	b[src][dst] = struct{}{}
}

func (b builder) adjacency() dag.Adjacency[string] {
	m := make(map[string][]string, len(b))
	for src, dsts := range b {
		m[src] = slices.Sorted(maps.Keys(dsts))
	}
	return dag.FromMap(m)
}

// Samples returns the built-in sample graphs.
func Samples() []Sample {
	return []Sample{
		{"fan", "two sources sharing sinks, with a long edge", graph1()},
		{"loops", "nested cycles through a hub", graph2()},
		{"self", "self loops next to a cycle", graph3()},
		{"chain", "a short chain with a shortcut", graph4()},
	}
}

// Lookup returns the sample with the given name.
func Lookup(name string) (Sample, bool) {
	for _, s := range Samples() {
		if s.Name == name {
			return s, true
		}
	}
	return Sample{}, false
}

// Names lists the sample names.
func Names() []string {
	var names []string
	for _, s := range Samples() {
		names = append(names, s.Name)
	}
	return names
}

func graph1() dag.Adjacency[string] {
	b := builder{}
	b.connect("fc", "fe")
	b.connect("fc", "c")
	b.connect("c", "e")
	b.connect("fe", "e")
	b.connect("fc", "fk")
	b.connect("fd", "fk")
	b.connect("c", "k")
	b.connect("d", "k")
	return b.adjacency()
}

func graph2() dag.Adjacency[string] {
	b := builder{}
	b.connect("1", "7")
	b.connect("1", "8")
	b.connect("1", "9")
	b.connect("9", "1")
	b.connect("9", "0")
	b.connect("9", "4")
	b.connect("4", "8")
	b.connect("4", "3")
	b.connect("3", "4")
	return b.adjacency()
}

func graph3() dag.Adjacency[string] {
	b := builder{}
	b.connect("0", "0")
	b.connect("2", "2")
	b.connect("2", "3")
	b.connect("3", "0")
	return b.adjacency()
}

func graph4() dag.Adjacency[string] {
	b := builder{}
	b.connect("8", "9")
	b.connect("3", "1")
	b.connect("3", "2")
	b.connect("3", "9")
	b.connect("4", "3")
	return b.adjacency()
}

// Random draws edgeCount edges between nodes named "0" to maxNodes-1.
// Endpoints are uniform, so self loops, cycles and duplicates (which
// collapse) all occur.
func Random(rng *rand.Rand, maxNodes, edgeCount int) dag.Adjacency[string] {
	b := builder{}
	for range edgeCount {
		b.connect(strconv.Itoa(rng.IntN(maxNodes)), strconv.Itoa(rng.IntN(maxNodes)))
	}
	return b.adjacency()
}

// NewRand returns a generator seeded with seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}
