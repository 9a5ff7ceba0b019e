package cli

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/leveling/internal/demo"
	"github.com/matzehuels/leveling/pkg/dag"
	"github.com/matzehuels/leveling/pkg/graph"
	"github.com/matzehuels/leveling/pkg/layout"
	"github.com/matzehuels/leveling/pkg/pipeline"
)

var (
	helpStyle  = fg(colorFaint)
	titleStyle = fg(colorAccent).Bold(true)
)

// =============================================================================
// demoView - One laid out graph
// =============================================================================

// demoView is a computed layout together with what the demo shows about it.
type demoView struct {
	Name        string
	Description string
	Layout      graph.Layout
	Stats       pipeline.Stats
	CheckErr    error // result of the level integrity check
	Err         error // layout failed altogether
}

// layoutView lays out adj with the engine directly, so the integrity check
// of the engine layout is available next to the serialized document.
func layoutView(name, description string, adj dag.Adjacency[string], opts pipeline.Options) demoView {
	v := demoView{Name: name, Description: description}

	g, err := dag.New(adj)
	if err != nil {
		v.Err = err
		return v
	}
	start := time.Now()
	l, err := layout.Compute(g,
		layout.WithSpacing(opts.Spacing),
		layout.WithLevelGap(opts.LevelGap),
		layout.WithControlPointDistance(opts.ControlPointDistance),
		layout.WithSizer(layout.TextSizer(opts.CharWidth, opts.Padding, opts.BoxHeight)),
	)
	if err != nil {
		v.Err = err
		return v
	}
	v.Layout = graph.FromLayout(l, opts.Style)
	v.Stats = pipeline.LayoutStats(graph.FromAdjacency(adj), v.Layout)
	v.Stats.LayoutTime = time.Since(start)
	v.CheckErr = l.Check()
	return v
}

// =============================================================================
// DemoModel - Interactive sample and random graph browser
// =============================================================================

// DemoModel is the bubbletea model of the demo command. "n" lays out a new
// random graph; the arrow keys step through the built-in samples.
type DemoModel struct {
	Samples  []demo.Sample
	Index    int // current sample, or -1 for a random graph
	Current  demoView
	Nodes    int
	Edges    int
	Opts     pipeline.Options
	Generate int // random graphs drawn so far

	rng *rand.Rand
}

// NewDemoModel creates a model showing the sample at index, or a random
// graph when index is negative.
func NewDemoModel(rng *rand.Rand, index, nodes, edges int, opts pipeline.Options) DemoModel {
	m := DemoModel{
		Samples: demo.Samples(),
		Index:   index,
		Nodes:   nodes,
		Edges:   edges,
		Opts:    opts,
		rng:     rng,
	}
	if index < 0 {
		m.nextRandom()
	} else {
		m.showSample()
	}
	return m
}

func (m *DemoModel) showSample() {
	s := m.Samples[m.Index]
	m.Current = layoutView(s.Name, s.Description, s.Graph, m.Opts)
}

func (m *DemoModel) nextRandom() {
	m.Index = -1
	m.Generate++
	adj := demo.Random(m.rng, m.Nodes, m.Edges)
	name := fmt.Sprintf("random #%d", m.Generate)
	desc := fmt.Sprintf("%d edges drawn between %d nodes", m.Edges, m.Nodes)
	m.Current = layoutView(name, desc, adj, m.Opts)
}

func (m DemoModel) Init() tea.Cmd {
	return nil
}

func (m DemoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "n", " ", "enter":
		m.nextRandom()
	case "right", "l", "tab":
		m.Index = (m.Index + 1) % len(m.Samples)
		m.showSample()
	case "left", "h", "shift+tab":
		if m.Index <= 0 {
			m.Index = len(m.Samples) - 1
		} else {
			m.Index--
		}
		m.showSample()
	}
	return m, nil
}

func (m DemoModel) View() string {
	var b strings.Builder

	b.WriteString(renderView(m.Current))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("n next random graph  ←/→ samples  q quit"))
	b.WriteString("\n")
	return b.String()
}

// renderView draws a view: title, level table, stats and check result.
func renderView(v demoView) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(v.Name))
	b.WriteString(" ")
	b.WriteString(helpStyle.Render(v.Description))
	b.WriteString("\n\n")

	if v.Err != nil {
		b.WriteString(markFail.String() + " " + StyleError.Render(v.Err.Error()))
		return b.String()
	}

	b.WriteString(levelTable(v.Layout))
	b.WriteString("\n\n")
	b.WriteString(statsLine(v.Stats, false))
	b.WriteString(StyleDim.Render(fmt.Sprintf(" · %d placeholders · %.0f×%.0f · %s",
		len(v.Layout.Placeholders), v.Layout.Width, v.Layout.Height, v.Stats.LayoutTime.Round(time.Microsecond))))
	b.WriteString("\n")
	if v.CheckErr != nil {
		b.WriteString(markFail.String() + " " + StyleError.Render("check failed: "+v.CheckErr.Error()))
	} else {
		b.WriteString(markOK.String() + " " + StyleSuccess.Render("levels consistent"))
	}
	return b.String()
}
