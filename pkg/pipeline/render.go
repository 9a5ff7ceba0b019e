package pipeline

import (
	"context"
	"fmt"

	lverrors "github.com/matzehuels/leveling/pkg/errors"
	"github.com/matzehuels/leveling/pkg/graph"
	"github.com/matzehuels/leveling/pkg/render/nodelink"
	"github.com/matzehuels/leveling/pkg/render/svg"
)

// sink produces the bytes of one output format.
type sink func(ctx context.Context) ([]byte, error)

// RenderFromLayout generates output artifacts in the requested formats.
// The layout's stored style applies when opts leaves it unset.
func RenderFromLayout(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	opts = applyLayoutMetadata(opts, l)
	if l.IsNodelink() {
		return RenderNodelink(ctx, l, opts)
	}
	return renderLevels(ctx, l, opts)
}

// RenderFromLayoutData parses a serialized layout and renders it.
func RenderFromLayoutData(ctx context.Context, layoutData []byte, opts Options) (map[string][]byte, error) {
	parsed, err := graph.UnmarshalLayout(layoutData)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return RenderFromLayout(ctx, parsed, opts)
}

// RenderNodelink generates outputs of a nodelink layout through Graphviz.
func RenderNodelink(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	dot, err := nodelink.Parse(l)
	if err != nil {
		return nil, err
	}
	return runSinks(ctx, "nodelink", opts.Formats, map[string]sink{
		FormatSVG:  func(ctx context.Context) ([]byte, error) { return nodelink.RenderSVG(ctx, dot) },
		FormatPNG:  func(ctx context.Context) ([]byte, error) { return nodelink.RenderPNG(ctx, dot, opts.Scale) },
		FormatPDF:  func(ctx context.Context) ([]byte, error) { return nodelink.RenderPDF(ctx, dot) },
		FormatJSON: jsonSink(l),
		FormatDOT:  constSink([]byte(dot)),
	})
}

func renderLevels(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	svgOpts, err := buildSVGOptions(opts)
	if err != nil {
		return nil, err
	}
	return runSinks(ctx, "levels", opts.Formats, map[string]sink{
		FormatSVG:  func(context.Context) ([]byte, error) { return svg.Render(l, svgOpts...) },
		FormatPNG:  func(ctx context.Context) ([]byte, error) { return svg.RenderPNG(ctx, l, opts.Scale, svgOpts...) },
		FormatPDF:  func(ctx context.Context) ([]byte, error) { return svg.RenderPDF(ctx, l, svgOpts...) },
		FormatJSON: jsonSink(l),
		FormatDOT:  constSink([]byte(nodelink.ToDOT(l, nodelink.Options{Detailed: opts.Detailed}))),
	})
}

// runSinks renders formats in order and stops at the first failure.
func runSinks(ctx context.Context, kind string, formats []string, sinks map[string]sink) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		produce, ok := sinks[format]
		if !ok {
			return nil, lverrors.New(lverrors.ErrCodeInvalidFormat, "%s layouts cannot be rendered as %q", kind, format)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := produce(ctx)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func jsonSink(l graph.Layout) sink {
	return func(context.Context) ([]byte, error) { return graph.MarshalLayout(l) }
}

func constSink(data []byte) sink {
	return func(context.Context) ([]byte, error) { return data, nil }
}

func applyLayoutMetadata(opts Options, l graph.Layout) Options {
	if opts.Style == "" && l.Style != "" {
		opts.Style = l.Style
	}
	opts.SetRenderDefaults()
	return opts
}

func buildSVGOptions(opts Options) ([]svg.Option, error) {
	style, err := svg.ParseStyle(opts.Style)
	if err != nil {
		return nil, err
	}
	svgOpts := []svg.Option{svg.WithStyle(style)}
	if opts.ShowPlaceholders {
		svgOpts = append(svgOpts, svg.WithPlaceholders())
	}
	return svgOpts, nil
}
