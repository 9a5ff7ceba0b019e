package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/leveling/pkg/graph"
	"github.com/matzehuels/leveling/pkg/pipeline"
)

var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorLink   = lipgloss.Color("75")
	colorText   = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
)

func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

var (
	StyleLink    = fg(colorLink).Underline(true)
	StyleDim     = fg(colorFaint)
	StyleSuccess = fg(colorOK)
	StyleWarning = fg(colorWarn)
	StyleError   = fg(colorFail)

	styleValue    = fg(colorText)
	styleNumber   = fg(colorAccent)
	styleKey      = fg(colorMuted).Width(12)
	styleHeader   = fg(colorMuted).Bold(true)
	styleFeedback = fg(colorWarn)
	styleSpinner  = fg(colorAccent)
	styleCommand  = fg(colorLink)
)

// mark is a colored status icon leading a line.
type mark struct {
	icon  string
	style lipgloss.Style
}

func (m mark) String() string { return m.style.Render(m.icon) }

var (
	markOK   = mark{"✓", fg(colorOK)}
	markFail = mark{"✗", fg(colorFail)}
	markWarn = mark{"!", fg(colorWarn)}
	markInfo = mark{"›", fg(colorMuted)}
)

const (
	iconArrow   = "→"
	iconBack    = "↺"
	labelCached = "cached"
	labelFresh  = "fresh"
)

// uiOut receives status lines. Command results go to the command's output,
// so they can be piped without the decoration.
var uiOut io.Writer = os.Stderr

func say(s string) { fmt.Fprintln(uiOut, s) }

func printSuccess(format string, args ...any) {
	say(markOK.String() + " " + fmt.Sprintf(format, args...))
}
func printError(format string, args ...any) {
	say(markFail.String() + " " + fmt.Sprintf(format, args...))
}
func printInfo(format string, args ...any) {
	say(markInfo.String() + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	say(markWarn.String() + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printDetail(format string, args ...any) {
	say("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}
func printFile(path string)                    { say("  " + StyleDim.Render(iconArrow) + " " + styleValue.Render(path)) }
func printKeyValue(key, value string)          { say(styleKey.Render(key) + " " + styleValue.Render(value)) }
func printNextStep(what, cmd string)           { say(StyleDim.Render(what+":") + " " + styleCommand.Render(cmd)) }
func printNewline()                            { say("") }
func printStats(s pipeline.Stats, cached bool) { say(statsLine(s, cached)) }

// statsLine renders layout statistics as one dimmed, dot-separated line
// ending in whether the layout came from the cache.
func statsLine(s pipeline.Stats, cached bool) string {
	sep := StyleDim.Render(" · ")
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d nodes", s.NodeCount)),
		StyleDim.Render(fmt.Sprintf("%d edges", s.EdgeCount)),
		StyleDim.Render(fmt.Sprintf("%d levels", s.LevelCount)),
		StyleDim.Render(fmt.Sprintf("%d crossings", s.Crossings)),
		fg(colorMuted).Render(labelFresh),
	}
	if cached {
		parts[len(parts)-1] = StyleSuccess.Render(labelCached)
	}
	return "  " + strings.Join(parts, sep)
}

// levelTable renders one row per level with the labels of its boxes, left
// to right, followed by the feedback edges that were reversed.
func levelTable(doc graph.Layout) string {
	labels := make(map[string]string, len(doc.Boxes))
	for _, b := range doc.Boxes {
		labels[b.ID] = b.Label
	}

	rows := make([][]string, len(doc.Levels))
	for i, level := range doc.Levels {
		names := make([]string, len(level))
		for j, id := range level {
			names[j] = labels[id]
			if names[j] == "" {
				names[j] = id
			}
		}
		rows[i] = []string{strconv.Itoa(i), strconv.Itoa(len(level)), strings.Join(names, "  ")}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("Level", "Nodes", "Left to right").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == 2:
				return styleValue
			default:
				return styleNumber
			}
		})

	var b strings.Builder
	b.WriteString(t.Render())
	for _, e := range doc.Feedback {
		b.WriteString("\n")
		b.WriteString(styleFeedback.Render(fmt.Sprintf("  %s %s %s %s (reversed)", iconBack, e.From, iconArrow, e.To)))
	}
	return b.String()
}
