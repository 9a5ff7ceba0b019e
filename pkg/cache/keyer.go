package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Keyer derives cache keys for pipeline results.
type Keyer interface {
	// LayoutKey returns the key of the layout of the graph with the given
	// content hash.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
	// ArtifactKey returns the key of a rendered artifact of the layout with
	// the given content hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds every option that changes a computed layout.
type LayoutKeyOpts struct {
	VizType              string  `json:"viz_type"`
	Spacing              float64 `json:"spacing"`
	LevelGap             float64 `json:"level_gap"`
	ControlPointDistance float64 `json:"cpd"`
	Sizing               string  `json:"sizing"`
	CharWidth            float64 `json:"char_width"`
	Padding              float64 `json:"padding"`
	BoxHeight            float64 `json:"box_height"`
	Detailed             bool    `json:"detailed"` // nodelink labels
}

// ArtifactKeyOpts holds every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format           string  `json:"format"`
	Style            string  `json:"style"`
	ShowPlaceholders bool    `json:"placeholders"`
	Detailed         bool    `json:"detailed"`
	Scale            float64 `json:"scale"`
}

// DefaultKeyer produces keys of the form "kind:sha256(parts)".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// Hash returns the hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey returns "kind:<digest>", the digest covering the JSON encoding of
// parts. Option structs have fixed field order, so equal options give equal
// keys.
func hashKey(kind string, parts ...any) string {
	h := sha256.New()
	_ = json.NewEncoder(h).Encode(parts)
	return kind + ":" + hex.EncodeToString(h.Sum(nil))
}
