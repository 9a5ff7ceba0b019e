package layout

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	lverrors "github.com/matzehuels/leveling/pkg/errors"
)

// Default geometry, in layout units.
const (
	DefaultControlPointDistance = 24.0
	DefaultSpacing              = 14.0
	DefaultLevelGap             = 48.0
	DefaultBoxHeight            = 40.0
	DefaultCharWidth            = 7.0
	DefaultPadding              = 10.0
)

// Sizer returns the width and preferred height of a vertex box for a label.
type Sizer func(label string) (width, height float64)

// TextSizer sizes boxes to fit their label: one charWidth per rune plus
// padding on both sides, with a fixed height.
func TextSizer(charWidth, padding, height float64) Sizer {
	return func(label string) (float64, float64) {
		return float64(utf8.RuneCountInString(label))*charWidth + 2*padding, height
	}
}

// DefaultSizer is [TextSizer] with the default character width, padding and
// box height.
var DefaultSizer = TextSizer(DefaultCharWidth, DefaultPadding, DefaultBoxHeight)

// NumericSizer sizes boxes of numeric labels by value: value·5 + 10 wide.
// Labels that are not numbers, or negative ones, are sized by fallback.
func NumericSizer(height float64, fallback Sizer) Sizer {
	return func(label string) (float64, float64) {
		v, err := strconv.ParseFloat(strings.TrimSpace(label), 64)
		if err != nil || v < 0 {
			return fallback(label)
		}
		return v*5 + 10, height
	}
}

// Option configures [Compute].
type Option func(*config)

type config struct {
	spacing  float64
	levelGap float64
	cpd      float64
	sizer    Sizer
	logger   *log.Logger
}

func defaultConfig() config {
	return config{
		spacing:  DefaultSpacing,
		levelGap: DefaultLevelGap,
		cpd:      DefaultControlPointDistance,
		sizer:    DefaultSizer,
		logger:   discard,
	}
}

func (c *config) validate() error {
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"spacing", c.spacing},
		{"level gap", c.levelGap},
		{"control point distance", c.cpd},
	} {
		if !validSize(v.value) {
			return lverrors.New(lverrors.ErrCodeInvalidOption, "%s must be a non-negative number", v.name)
		}
	}
	if c.sizer == nil {
		c.sizer = DefaultSizer
	}
	if c.logger == nil {
		c.logger = discard
	}
	return nil
}

// WithSpacing sets the horizontal gap between elements of a level.
func WithSpacing(v float64) Option { return func(c *config) { c.spacing = v } }

// WithLevelGap sets the vertical gap between consecutive levels.
func WithLevelGap(v float64) Option { return func(c *config) { c.levelGap = v } }

// WithControlPointDistance sets the vertical offset of curve control points.
// The same distance is reserved above the first and below the last level
// when edges enter or leave there.
func WithControlPointDistance(v float64) Option { return func(c *config) { c.cpd = v } }

// WithSizer sets how vertex boxes are sized.
func WithSizer(s Sizer) Option { return func(c *config) { c.sizer = s } }

// WithLogger enables debug logging of the layout phases.
func WithLogger(l *log.Logger) Option { return func(c *config) { c.logger = l } }
