// Package io reads and writes graph files in JSON, TOML and YAML.
//
// # Overview
//
// Graph files describe the input of a layout. Every format accepts two
// shapes, told apart by their top-level keys.
//
// The document form has "nodes" and optionally "edges", see [graph.Graph]:
//
//	[[nodes]]
//	id = "app"
//	successors = ["lib", "log"]
//
//	[[edges]]
//	from = "lib"
//	to = "log"
//
// The compact form maps every node to its successors:
//
//	app: [lib, log]
//	lib: [log]
//	log: []
//
// Key order in the compact form is significant and preserved, since it
// decides node order and with it the tie-breaking of the layout. A compact
// graph whose only nodes are named "nodes" or "edges" is read as a document.
//
// # Import
//
// Use [Import] to read a file by extension, or [Read] with an explicit
// [Format] for any io.Reader:
//
//	doc, err := io.Import("deps.yaml")
//	adj, err := doc.Adjacency()
//
// Missing files return an error coded FILE_NOT_FOUND, undecodable input
// INVALID_INPUT and unknown extensions INVALID_FORMAT.
//
// # Export
//
// [Export] and [Write] always produce the document form.
//
// # Concurrency
//
// All functions are safe for concurrent use.
//
// [graph.Graph]: github.com/matzehuels/leveling/pkg/graph.Graph
package io
