// Package pipeline runs the layout → render pipeline shared by the CLI and
// the HTTP server.
//
// This package turns a [graph.Graph] document into a serialized layout and
// renders it to artifacts. By centralizing this logic, every entry point
// applies the same defaults, validation and caching.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: Break cycles, assign levels and coordinates, route edges
//  2. Render: Generate output in various formats (SVG, PNG, PDF, JSON, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Formats: []string{"svg"}}
//	result, err := runner.Execute(ctx, doc, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Layout only
//	layout, err := runner.ComputeLayout(ctx, doc, opts)
//
//	// Render with existing layout
//	artifacts, err := runner.Render(ctx, layout, opts)
//
// [graph.Graph]: github.com/matzehuels/leveling/pkg/graph.Graph
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/leveling/pkg/cache"
	lverrors "github.com/matzehuels/leveling/pkg/errors"
	"github.com/matzehuels/leveling/pkg/graph"
	"github.com/matzehuels/leveling/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// DefaultVizType is the default visualization type.
const DefaultVizType = graph.VizTypeLevels

// DefaultStyle is the default visual style.
const DefaultStyle = graph.StyleCurved

// DefaultScale is the default PNG scale factor.
const DefaultScale = 2.0

// Graph size limits. Cycle breaking grows roughly cubically with the edge
// count, so a 500 node graph with 1500 edges takes a few seconds.
const (
	DefaultMaxNodes = 500
	DefaultMaxEdges = 1500
)

// Sizing modes.
const (
	SizingText    = "text"    // width from label length
	SizingNumeric = "numeric" // width from numeric label value
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats lists the supported output formats.
var ValidFormats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT}

// ValidStyles lists the supported visual styles.
var ValidStyles = []string{graph.StyleSimple, graph.StyleCurved}

// ValidVizTypes lists the supported visualization types.
var ValidVizTypes = []string{graph.VizTypeLevels, graph.VizTypeNodelink}

// ValidSizings lists the supported sizing modes.
var ValidSizings = []string{SizingText, SizingNumeric}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline. It is decoded from
// JSON request bodies and from the TOML config file; zero values mean
// "use the default".
type Options struct {
	// Layout options
	VizType              string  `json:"viz_type,omitempty" toml:"viz_type"`
	Spacing              float64 `json:"spacing,omitempty" toml:"spacing"`
	LevelGap             float64 `json:"level_gap,omitempty" toml:"level_gap"`
	ControlPointDistance float64 `json:"cpd,omitempty" toml:"cpd"`
	Sizing               string  `json:"sizing,omitempty" toml:"sizing"`
	CharWidth            float64 `json:"char_width,omitempty" toml:"char_width"`
	Padding              float64 `json:"padding,omitempty" toml:"padding"`
	BoxHeight            float64 `json:"box_height,omitempty" toml:"box_height"`

	// MaxNodes and MaxEdges bound the input graph. They are operator
	// settings, so request bodies cannot raise them.
	MaxNodes int `json:"-" toml:"max_nodes"`
	MaxEdges int `json:"-" toml:"max_edges"`

	// Render options
	Formats          []string `json:"formats,omitempty" toml:"formats"`
	Style            string   `json:"style,omitempty" toml:"style"`
	ShowPlaceholders bool     `json:"placeholders,omitempty" toml:"placeholders"`
	Detailed         bool     `json:"detailed,omitempty" toml:"detailed"`
	Scale            float64  `json:"scale,omitempty" toml:"scale"`

	// Refresh bypasses cached results and overwrites them.
	Refresh bool `json:"refresh,omitempty" toml:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies the run in logs and API responses.
	ID string

	// GraphHash is the content hash of the input graph.
	GraphHash string

	// Layout is the serialized layout.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LevelCount int
	Crossings  int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return lverrors.ValidateFormat(format, ValidFormats...)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	for _, s := range ValidStyles {
		if style == s {
			return nil
		}
	}
	return lverrors.New(lverrors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: simple, curved)", style)
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	for _, v := range ValidVizTypes {
		if vizType == v {
			return nil
		}
	}
	return lverrors.New(lverrors.ErrCodeInvalidOption, "invalid viz_type: %q (must be one of: levels, nodelink)", vizType)
}

// ValidateSizing checks that a sizing mode is valid.
func ValidateSizing(sizing string) error {
	for _, s := range ValidSizings {
		if sizing == s {
			return nil
		}
	}
	return lverrors.New(lverrors.ErrCodeInvalidOption, "invalid sizing: %q (must be one of: text, numeric)", sizing)
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and validates the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.Spacing == 0 {
		o.Spacing = layout.DefaultSpacing
	}
	if o.LevelGap == 0 {
		o.LevelGap = layout.DefaultLevelGap
	}
	if o.ControlPointDistance == 0 {
		o.ControlPointDistance = layout.DefaultControlPointDistance
	}
	if o.Sizing == "" {
		o.Sizing = SizingText
	}
	if o.CharWidth == 0 {
		o.CharWidth = layout.DefaultCharWidth
	}
	if o.Padding == 0 {
		o.Padding = layout.DefaultPadding
	}
	if o.BoxHeight == 0 {
		o.BoxHeight = layout.DefaultBoxHeight
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.MaxNodes == 0 {
		o.MaxNodes = DefaultMaxNodes
	}
	if o.MaxEdges == 0 {
		o.MaxEdges = DefaultMaxEdges
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
// Geometry is validated by the layout engine itself.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if err := ValidateSizing(o.Sizing); err != nil {
		return err
	}
	if err := lverrors.ValidatePositive("max_nodes", float64(o.MaxNodes)); err != nil {
		return err
	}
	return lverrors.ValidatePositive("max_edges", float64(o.MaxEdges))
}

// CheckSize reports an INVALID_INPUT error when a graph with the given
// counts exceeds the configured limits.
func (o *Options) CheckSize(nodes, edges int) error {
	if nodes > o.MaxNodes {
		return lverrors.New(lverrors.ErrCodeInvalidInput, "graph has %d nodes, limit is %d", nodes, o.MaxNodes)
	}
	if edges > o.MaxEdges {
		return lverrors.New(lverrors.ErrCodeInvalidInput, "graph has %d edges, limit is %d", edges, o.MaxEdges)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	return lverrors.ValidatePositive("scale", o.Scale)
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == graph.VizTypeNodelink
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		VizType:              o.VizType,
		Spacing:              o.Spacing,
		LevelGap:             o.LevelGap,
		ControlPointDistance: o.ControlPointDistance,
		Sizing:               o.Sizing,
		CharWidth:            o.CharWidth,
		Padding:              o.Padding,
		BoxHeight:            o.BoxHeight,
		Detailed:             o.Detailed,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:           format,
		Style:            o.Style,
		ShowPlaceholders: o.ShowPlaceholders,
		Detailed:         o.Detailed,
		Scale:            o.Scale,
	}
}
