package io

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	lverrors "github.com/matzehuels/leveling/pkg/errors"
	"github.com/matzehuels/leveling/pkg/graph"
)

// Format is a graph file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Formats lists the supported formats.
var Formats = []string{string(FormatJSON), string(FormatTOML), string(FormatYAML)}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", lverrors.New(lverrors.ErrCodeInvalidFormat,
			"unsupported graph file extension %q (must be one of: .json, .toml, .yaml, .yml)", ext)
	}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	if s == "yml" {
		s = string(FormatYAML)
	}
	if err := lverrors.ValidateFormat(s, Formats...); err != nil {
		return "", err
	}
	return Format(s), nil
}

// Import reads the graph file at path, choosing the format by extension.
func Import(path string) (graph.Graph, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return graph.Graph{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return graph.Graph{}, lverrors.Wrap(lverrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return graph.Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	g, err := Read(f, format)
	if err != nil {
		return graph.Graph{}, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Read decodes a graph in the given format from r. Both the document form
// (nodes and edges) and the compact adjacency form are accepted; key order
// of the compact form is preserved. Read does not close r.
func Read(r io.Reader, format Format) (graph.Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return graph.Graph{}, fmt.Errorf("read: %w", err)
	}

	var g graph.Graph
	switch format {
	case FormatJSON:
		g, err = decodeJSON(data)
	case FormatTOML:
		g, err = decodeTOML(data)
	case FormatYAML:
		g, err = decodeYAML(data)
	default:
		return graph.Graph{}, lverrors.New(lverrors.ErrCodeInvalidFormat, "unsupported graph format %q", format)
	}
	if err != nil {
		return graph.Graph{}, lverrors.Wrap(lverrors.ErrCodeInvalidInput, err, "decode %s graph", format)
	}
	return g, nil
}

// ReadJSON decodes a JSON graph from r.
func ReadJSON(r io.Reader) (graph.Graph, error) { return Read(r, FormatJSON) }

// ReadTOML decodes a TOML graph from r.
func ReadTOML(r io.Reader) (graph.Graph, error) { return Read(r, FormatTOML) }

// ReadYAML decodes a YAML graph from r.
func ReadYAML(r io.Reader) (graph.Graph, error) { return Read(r, FormatYAML) }

// isDocument reports whether top-level keys describe the document form.
func isDocument(keys []string) bool {
	if len(keys) == 0 {
		return true
	}
	for _, k := range keys {
		if k != "nodes" && k != "edges" {
			return false
		}
	}
	return true
}

func decodeJSON(data []byte) (graph.Graph, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return graph.Graph{}, err
	}
	keys := make([]string, 0, len(probe))
	for k := range probe {
		keys = append(keys, k)
	}
	if isDocument(keys) {
		var g graph.Graph
		err := json.Unmarshal(data, &g)
		return g, err
	}

	// The compact form is decoded token by token to keep key order.
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return graph.Graph{}, err
	}
	var g graph.Graph
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return graph.Graph{}, err
		}
		var succ []string
		if err := dec.Decode(&succ); err != nil {
			return graph.Graph{}, fmt.Errorf("successors of %q: %w", tok, err)
		}
		g.Nodes = append(g.Nodes, graph.Node{ID: tok.(string), Successors: succ})
	}
	return g, nil
}

func decodeTOML(data []byte) (graph.Graph, error) {
	var raw map[string]any
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return graph.Graph{}, err
	}

	var top []string
	for _, key := range md.Keys() {
		if len(key) == 1 {
			top = append(top, key[0])
		}
	}
	if isDocument(top) {
		var g graph.Graph
		err := toml.Unmarshal(data, &g)
		return g, err
	}

	var g graph.Graph
	for _, id := range top {
		list, ok := raw[id].([]any)
		if !ok {
			return graph.Graph{}, fmt.Errorf("successors of %q must be an array of strings", id)
		}
		succ := make([]string, len(list))
		for i, v := range list {
			s, ok := v.(string)
			if !ok {
				return graph.Graph{}, fmt.Errorf("successor %d of %q must be a string", i, id)
			}
			succ[i] = s
		}
		g.Nodes = append(g.Nodes, graph.Node{ID: id, Successors: succ})
	}
	return g, nil
}

func decodeYAML(data []byte) (graph.Graph, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return graph.Graph{}, err
	}
	if len(doc.Content) == 0 {
		return graph.Graph{}, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return graph.Graph{}, fmt.Errorf("line %d: graph must be a mapping", root.Line)
	}

	keys := make([]string, 0, len(root.Content)/2)
	for i := 0; i < len(root.Content); i += 2 {
		keys = append(keys, root.Content[i].Value)
	}
	if isDocument(keys) {
		var g graph.Graph
		err := root.Decode(&g)
		return g, err
	}

	var g graph.Graph
	for i := 0; i < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		var succ []string
		if err := value.Decode(&succ); err != nil {
			return graph.Graph{}, fmt.Errorf("line %d: successors of %q: %w", value.Line, key.Value, err)
		}
		g.Nodes = append(g.Nodes, graph.Node{ID: key.Value, Successors: succ})
	}
	return g, nil
}
