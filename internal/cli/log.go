// Package cli implements the leveling command line.
//
// Commands:
//
//	layout     graph file → layout JSON
//	render     graph file → svg, png, pdf, json or dot
//	visualize  layout JSON → svg, png, pdf, json or dot
//	demo       browse sample and random graphs in the terminal
//	serve      HTTP API over the same pipeline
//	cache      inspect and clear the local cache
//
// Every command reads pipeline options from --config (TOML); flags set on
// the command line win over the file. --verbose switches the logger to
// debug and logs pipeline, cache and server hooks. Commands find the logger
// in their context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger stamping lines with wall-clock time to the
// hundredth of a second.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one command step.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, as in "Wrote 3 files (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type loggerKey struct{}

// withLogger attaches l to ctx.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
