package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dashkite/dashgen/internal/figure"
)

// ErrExportFailure wraps any error raised while writing an image file.
var ErrExportFailure = errors.New("export failed")

// Format is an output image format.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
	FormatPDF Format = "pdf"
)

// ParseFormat validates a format string.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPNG, FormatSVG, FormatPDF:
		return f, nil
	case "":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("%w: unsupported format %q (png, svg, pdf)", ErrExportFailure, s)
	}
}

// Options controls a single export.
type Options struct {
	Dir      string
	Filename string // without extension
	Format   Format
	Width    int
	Height   int
	Scale    float64
}

// Export renders fig to an image file and returns the written path. The
// output directory is created if missing. Scale multiplies the pixel
// dimensions for raster output; vector formats keep logical size.
func Export(fig *figure.Figure, opts Options) (string, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return "", fmt.Errorf("%w: invalid dimensions %dx%d", ErrExportFailure, opts.Width, opts.Height)
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Format == "" {
		opts.Format = FormatPNG
	}

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create output dir: %v", ErrExportFailure, err)
	}
	path := filepath.Join(opts.Dir, opts.Filename+"."+string(opts.Format))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExportFailure, err)
	}
	defer f.Close()

	var (
		canvas Canvas
		scale  = opts.Scale
	)
	switch opts.Format {
	case FormatPNG:
		w := int(float64(opts.Width) * scale)
		h := int(float64(opts.Height) * scale)
		canvas, err = newPNGCanvas(w, h, f)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrExportFailure, err)
		}
	case FormatSVG:
		scale = 1
		canvas = newSVGCanvas(opts.Width, opts.Height, f)
	case FormatPDF:
		scale = 1
		canvas = newPDFCanvas(opts.Width, opts.Height, f)
	default:
		return "", fmt.Errorf("%w: unsupported format %q", ErrExportFailure, opts.Format)
	}

	if err := draw(fig, canvas, opts.Width, opts.Height, scale); err != nil {
		return "", fmt.Errorf("%w: %v", ErrExportFailure, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrExportFailure, err)
	}
	return path, nil
}

// lerpColor interpolates two colors in RGB space, returning hex.
func lerpColor(a, b string, t float64) string {
	ar, ag, ab, _ := parseColor(a)
	br, bg, bb, _ := parseColor(b)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return fmt.Sprintf("#%02x%02x%02x", mix(ar, br), mix(ag, bg), mix(ab, bb))
}
