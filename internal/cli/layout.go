package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/leveling/pkg/graph"
	"github.com/matzehuels/leveling/pkg/io"
	"github.com/matzehuels/leveling/pkg/pipeline"
)

// layoutCommand creates the layout command for computing layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		show    bool
	)
	opts := defaultOptions()

	cmd := &cobra.Command{
		Use:   "layout [graph-file]",
		Short: "Compute a layout from a graph file",
		Long: `Compute a layout from a graph file.

The graph file is JSON, TOML or YAML, chosen by extension, in either the
document form (nodes and edges) or the compact form (node: [successors]).
The output is a layout.json file that can be rendered with 'visualize'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, &opts)
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache, show)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute and overwrite cached results")
	cmd.Flags().BoolVar(&show, "show", false, "print the levels as a table")
	layoutFlags(cmd, &opts)
	limitFlags(cmd, &opts)

	return cmd
}

// runLayout loads the graph, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache, show bool) error {
	g, err := io.Import(input)
	if err != nil {
		return fmt.Errorf("load graph: %w", err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	opts.Logger = logger

	spinner := newSpinner(ctx, fmt.Sprintf("Computing %s layout...", opts.VizType))
	spinner.Start()

	start := time.Now()
	doc, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = outputBase("", input) + ".layout.json"
	}
	if err := graph.WriteLayoutFile(doc, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	stats := pipeline.LayoutStats(g, doc)
	stats.LayoutTime = time.Since(start)
	logger.Debug("layout written", "path", outputPath, "duration", stats.LayoutTime)

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(stats, cacheHit)
	if show {
		printNewline()
		say(levelTable(doc))
	}
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}
