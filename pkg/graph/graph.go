package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// MarshalGraph encodes g as indented JSON, the form [WriteGraph] produces.
// The pipeline hashes this encoding, so equal graphs share cache entries.
func MarshalGraph(g Graph) ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

// UnmarshalGraph decodes a JSON graph document.
func UnmarshalGraph(data []byte) (g Graph, err error) {
	err = json.Unmarshal(data, &g)
	return g, err
}

// WriteGraph writes g to w as indented JSON followed by a newline.
func WriteGraph(g Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	return nil
}

// WriteGraphFile writes g to path, replacing any existing file.
func WriteGraphFile(g Graph, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteGraph(g, f)
}

// ReadGraph decodes one JSON graph document from r.
func ReadGraph(r io.Reader) (Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return Graph{}, fmt.Errorf("decode graph: %w", err)
	}
	return g, nil
}

// ReadGraphFile reads the JSON graph document at path.
func ReadGraphFile(path string) (Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return Graph{}, err
	}
	defer f.Close()
	return ReadGraph(f)
}
