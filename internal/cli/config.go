package cli

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	lverrors "github.com/matzehuels/leveling/pkg/errors"
	"github.com/matzehuels/leveling/pkg/pipeline"
)

// loadConfig decodes a TOML config file into pipeline options. Keys the
// options don't know are rejected, so typos don't pass silently.
//
//	spacing   = 20
//	level_gap = 60
//	style     = "simple"
//	formats   = ["svg", "png"]
func loadConfig(path string) (pipeline.Options, error) {
	var opts pipeline.Options
	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return pipeline.Options{}, lverrors.Wrap(lverrors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return pipeline.Options{}, lverrors.Wrap(lverrors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return pipeline.Options{}, lverrors.New(lverrors.ErrCodeInvalidOption,
			"config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return opts, nil
}

// applyConfig copies config file values into opts for every option whose
// flag was not set on the command line.
func (c *CLI) applyConfig(cmd *cobra.Command, opts *pipeline.Options) {
	cfg := c.config

	override(cmd, "type", &opts.VizType, cfg.VizType)
	override(cmd, "spacing", &opts.Spacing, cfg.Spacing)
	override(cmd, "level-gap", &opts.LevelGap, cfg.LevelGap)
	override(cmd, "cpd", &opts.ControlPointDistance, cfg.ControlPointDistance)
	override(cmd, "sizing", &opts.Sizing, cfg.Sizing)
	override(cmd, "char-width", &opts.CharWidth, cfg.CharWidth)
	override(cmd, "padding", &opts.Padding, cfg.Padding)
	override(cmd, "box-height", &opts.BoxHeight, cfg.BoxHeight)
	override(cmd, "style", &opts.Style, cfg.Style)
	override(cmd, "placeholders", &opts.ShowPlaceholders, cfg.ShowPlaceholders)
	override(cmd, "detailed", &opts.Detailed, cfg.Detailed)
	override(cmd, "scale", &opts.Scale, cfg.Scale)
	override(cmd, "max-nodes", &opts.MaxNodes, cfg.MaxNodes)
	override(cmd, "max-edges", &opts.MaxEdges, cfg.MaxEdges)

	if len(cfg.Formats) > 0 && !flagChanged(cmd, "format") {
		opts.Formats = cfg.Formats
	}
}

// override sets *dst to v unless v is the zero value or the flag was given.
func override[T comparable](cmd *cobra.Command, flag string, dst *T, v T) {
	var zero T
	if v == zero || flagChanged(cmd, flag) {
		return
	}
	*dst = v
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

// layoutFlags registers the layout options shared by layout, render and demo.
func layoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVarP(&opts.VizType, "type", "t", opts.VizType, "visualization type: levels (default), nodelink")
	cmd.Flags().Float64Var(&opts.Spacing, "spacing", opts.Spacing, "horizontal gap between elements of a level")
	cmd.Flags().Float64Var(&opts.LevelGap, "level-gap", opts.LevelGap, "vertical gap between levels")
	cmd.Flags().Float64Var(&opts.ControlPointDistance, "cpd", opts.ControlPointDistance, "vertical control point offset of edge curves")
	cmd.Flags().StringVar(&opts.Sizing, "sizing", opts.Sizing, "box sizing: text (default), numeric")
	cmd.Flags().Float64Var(&opts.CharWidth, "char-width", opts.CharWidth, "label character width (text sizing)")
	cmd.Flags().Float64Var(&opts.Padding, "padding", opts.Padding, "horizontal label padding (text sizing)")
	cmd.Flags().Float64Var(&opts.BoxHeight, "box-height", opts.BoxHeight, "box height")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", opts.Detailed, "show level and position in nodelink labels")
	cmd.Flags().StringVar(&opts.Style, "style", opts.Style, "visual style: curved (default), simple")
}

// limitFlags registers the graph size limits of commands that compute layouts.
func limitFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().IntVar(&opts.MaxNodes, "max-nodes", opts.MaxNodes, "reject graphs with more nodes")
	cmd.Flags().IntVar(&opts.MaxEdges, "max-edges", opts.MaxEdges, "reject graphs with more edges")
}

// renderFlags registers the render options shared by render and visualize.
func renderFlags(cmd *cobra.Command, opts *pipeline.Options, formats *string) {
	cmd.Flags().StringVarP(formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().BoolVar(&opts.ShowPlaceholders, "placeholders", opts.ShowPlaceholders, "draw placeholder markers")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "PNG scale factor")
}

// defaultOptions returns options with all pipeline defaults applied, used
// as flag defaults so --help shows real values.
func defaultOptions() pipeline.Options {
	var opts pipeline.Options
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()
	opts.Logger = nil
	return opts
}
