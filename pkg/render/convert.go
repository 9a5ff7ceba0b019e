package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	lverrors "github.com/matzehuels/leveling/pkg/errors"
)

const rsvgTool = "rsvg-convert"

// ToPDF converts an SVG document to PDF with rsvg-convert.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return rsvgConvert(ctx, svg, "pdf")
}

// ToPNG converts an SVG document to PNG with rsvg-convert, zoomed by scale
// (2 gives a 2x image for high-DPI screens).
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if err := lverrors.ValidatePositive("scale", scale); err != nil {
		return nil, err
	}
	return rsvgConvert(ctx, svg, "png", "--zoom", strconv.FormatFloat(scale, 'f', 2, 64))
}

// Available reports whether rsvg-convert is on the PATH.
func Available() bool {
	_, err := exec.LookPath(rsvgTool)
	return err == nil
}

func rsvgConvert(ctx context.Context, svg []byte, format string, args ...string) ([]byte, error) {
	if !Available() {
		return nil, lverrors.New(lverrors.ErrCodeUnsupported,
			"%s output needs %s from librsvg (brew install librsvg, apt install librsvg2-bin)", format, rsvgTool)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, rsvgTool, append([]string{"--format", format}, args...)...)
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stdout, cmd.Stderr = &stdout, &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w: %s", rsvgTool, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
