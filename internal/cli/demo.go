package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/leveling/internal/demo"
	lverrors "github.com/matzehuels/leveling/pkg/errors"
)

const (
	defaultDemoSample = "loops"
	defaultDemoNodes  = 12
	defaultDemoEdges  = 10
)

// demoCommand creates the interactive demo command.
func (c *CLI) demoCommand() *cobra.Command {
	var (
		seed      uint64
		nodes     int
		edges     int
		random    bool
		printOnly bool
	)
	opts := defaultOptions()

	cmd := &cobra.Command{
		Use:   "demo [sample]",
		Short: "Browse sample and random graphs in the terminal",
		Long: `Browse sample and random graphs in the terminal.

Every graph is laid out and shown as a table of levels, with its crossing
count and the result of the level integrity check. Press n for a new random
graph and the arrow keys to step through the samples.

Samples: ` + strings.Join(demo.Names(), ", "),
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: demo.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, &opts)
			if nodes < 1 {
				return lverrors.New(lverrors.ErrCodeInvalidOption, "--nodes must be at least 1")
			}
			if edges < 0 {
				return lverrors.New(lverrors.ErrCodeInvalidOption, "--edges must not be negative")
			}

			index := -1
			if !random {
				name := defaultDemoSample
				if len(args) == 1 {
					name = args[0]
				}
				var err error
				if index, err = sampleIndex(name); err != nil {
					return err
				}
			}
			if seed == 0 {
				seed = uint64(time.Now().UnixNano())
			}
			c.Logger.Debug("demo", "seed", seed, "nodes", nodes, "edges", edges)

			m := NewDemoModel(demo.NewRand(seed), index, nodes, edges, opts)
			if printOnly {
				fmt.Fprintln(cmd.OutOrStdout(), renderView(m.Current))
				return nil
			}
			_, err := tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (default: time based)")
	cmd.Flags().IntVar(&nodes, "nodes", defaultDemoNodes, "node count of random graphs")
	cmd.Flags().IntVar(&edges, "edges", defaultDemoEdges, "edge draws of random graphs")
	cmd.Flags().BoolVar(&random, "random", false, "start with a random graph")
	cmd.Flags().BoolVar(&printOnly, "print", false, "print the first graph and exit")
	cmd.Flags().Float64Var(&opts.Spacing, "spacing", opts.Spacing, "horizontal gap between elements of a level")
	cmd.Flags().Float64Var(&opts.LevelGap, "level-gap", opts.LevelGap, "vertical gap between levels")

	return cmd
}

func sampleIndex(name string) (int, error) {
	for i, s := range demo.Samples() {
		if s.Name == name {
			return i, nil
		}
	}
	return 0, lverrors.New(lverrors.ErrCodeNotFound, "unknown sample %q (available: %s)",
		name, strings.Join(demo.Names(), ", "))
}
