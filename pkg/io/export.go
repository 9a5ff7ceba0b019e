package io

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	lverrors "github.com/matzehuels/leveling/pkg/errors"
	"github.com/matzehuels/leveling/pkg/graph"
)

// Write encodes g in the document form of the given format.
func Write(g graph.Graph, w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		return graph.WriteGraph(g, w)
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(g); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(g); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	default:
		return lverrors.New(lverrors.ErrCodeInvalidFormat, "unsupported graph format %q", format)
	}
}

// Export writes g to path, choosing the format by extension.
func Export(g graph.Graph, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(g, f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
