package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	lverrors "github.com/matzehuels/leveling/pkg/errors"
	"github.com/matzehuels/leveling/pkg/graph"
)

// compactWant is the graph every compact fixture below describes. Keys are
// deliberately out of alphabetical order.
var compactWant = graph.Graph{Nodes: []graph.Node{
	{ID: "zeta", Successors: []string{"alpha", "mu"}},
	{ID: "alpha", Successors: []string{"zeta"}},
	{ID: "mu"},
}}

func TestRead_Compact(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"json", FormatJSON, `{"zeta": ["alpha", "mu"], "alpha": ["zeta"], "mu": null}`},
		{"toml", FormatTOML, "zeta = [\"alpha\", \"mu\"]\nalpha = [\"zeta\"]\nmu = []\n"},
		{"yaml", FormatYAML, "zeta: [alpha, mu]\nalpha:\n  - zeta\nmu:\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(strings.NewReader(tt.input), tt.format)
			require.NoError(t, err)

			// TOML has no null, so "mu" decodes to an empty list there.
			if diff := cmp.Diff(compactWant, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Read() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRead_Document(t *testing.T) {
	want := graph.Graph{
		Nodes: []graph.Node{{ID: "a", Label: "App", Successors: []string{"b"}}, {ID: "b"}},
		Edges: []graph.Edge{{From: "b", To: "a"}},
	}
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"json", FormatJSON, `{
			"nodes": [{"id": "a", "label": "App", "successors": ["b"]}, {"id": "b"}],
			"edges": [{"from": "b", "to": "a"}]
		}`},
		{"toml", FormatTOML, `
[[nodes]]
id = "a"
label = "App"
successors = ["b"]

[[nodes]]
id = "b"

[[edges]]
from = "b"
to = "a"
`},
		{"yaml", FormatYAML, `
nodes:
  - id: a
    label: App
    successors: [b]
  - id: b
edges:
  - {from: b, to: a}
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(strings.NewReader(tt.input), tt.format)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Read() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
		code   lverrors.Code
	}{
		{"malformed json", FormatJSON, `{"a": [`, lverrors.ErrCodeInvalidInput},
		{"json number successor", FormatJSON, `{"a": [1]}`, lverrors.ErrCodeInvalidInput},
		{"toml scalar", FormatTOML, `a = "b"`, lverrors.ErrCodeInvalidInput},
		{"toml mixed array", FormatTOML, `a = ["b", 1]`, lverrors.ErrCodeInvalidInput},
		{"yaml list root", FormatYAML, "- a\n- b\n", lverrors.ErrCodeInvalidInput},
		{"yaml mapping successors", FormatYAML, "a: {b: c}\n", lverrors.ErrCodeInvalidInput},
		{"unknown format", Format("xml"), `<a/>`, lverrors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), tt.format)
			require.Error(t, err)
			require.True(t, lverrors.Is(err, tt.code), "error %v, want code %s", err, tt.code)
		})
	}
}

func TestRead_EmptyYAML(t *testing.T) {
	got, err := ReadYAML(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, got.Nodes)
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"g.json", FormatJSON, false},
		{"dir/G.TOML", FormatTOML, false},
		{"g.yml", FormatYAML, false},
		{"g.yaml", FormatYAML, false},
		{"g.dot", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFromPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatFromPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("yml")
	require.NoError(t, err)
	require.Equal(t, FormatYAML, f)

	_, err = ParseFormat("csv")
	require.True(t, lverrors.Is(err, lverrors.ErrCodeInvalidFormat))
}

func TestImport_FileNotFound(t *testing.T) {
	_, err := Import(filepath.Join(t.TempDir(), "missing.yaml"))
	require.True(t, lverrors.Is(err, lverrors.ErrCodeFileNotFound), "error %v", err)
}

func TestExportImportRoundTrip(t *testing.T) {
	want := graph.Graph{
		Nodes: []graph.Node{{ID: "a", Label: "App", Successors: []string{"b", "a"}}, {ID: "b"}},
		Edges: []graph.Edge{{From: "b", To: "a"}},
	}
	for _, ext := range []string{".json", ".toml", ".yaml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "graph"+ext)
			require.NoError(t, Export(want, path))

			got, err := Import(path)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(graph.Graph{}, &buf, Format("xml"))
	require.True(t, lverrors.Is(err, lverrors.ErrCodeInvalidFormat))
}

func TestExport_BadExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.txt")
	require.Error(t, Export(graph.Graph{}, path))
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err), "Export created %s", path)
}
