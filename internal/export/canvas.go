package export

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is a pixel coordinate. The origin is the top-left corner and y
// grows downward, matching every backend's native convention.
type Point struct {
	X float64
	Y float64
}

// Anchor controls horizontal text alignment relative to the given x.
type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

// Canvas is the primitive drawing surface the figure walk targets. All
// coordinates are pixels, colors are hex strings or CSS color names, and
// text y is the baseline. Backends implement exactly this set; everything
// curved is sampled into polygons before it reaches the canvas.
type Canvas interface {
	FillRect(x, y, w, h float64, color string)
	StrokeRect(x, y, w, h, width float64, color string)
	Line(x1, y1, x2, y2, width float64, color string)
	Polygon(pts []Point, fill string)
	PolyLine(pts []Point, width float64, color string)
	Circle(cx, cy, r float64, fill string)
	Text(s string, x, y, size float64, color, family string, anchor Anchor)
	Flush() error
}

// namedColors covers the CSS names that show up in widget configs, so
// threshold colors like "green" render without forcing hex on callers.
var namedColors = map[string]string{
	"black":  "#000000",
	"white":  "#ffffff",
	"red":    "#dc2626",
	"green":  "#16a34a",
	"yellow": "#eab308",
	"orange": "#f97316",
	"blue":   "#2563eb",
	"purple": "#9333ea",
	"gray":   "#6b7280",
	"grey":   "#6b7280",
}

// parseColor decodes #rgb, #rrggbb, #rrggbbaa, or a known color name.
// Unparseable input falls back to opaque black rather than failing the
// whole render.
func parseColor(s string) (r, g, b, a uint8) {
	s = strings.TrimSpace(strings.ToLower(s))
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	if !strings.HasPrefix(s, "#") {
		return 0, 0, 0, 255
	}
	hex := s[1:]

	parse := func(h string) uint8 {
		v, err := strconv.ParseUint(h, 16, 8)
		if err != nil {
			return 0
		}
		return uint8(v)
	}

	switch len(hex) {
	case 3:
		r = parse(hex[0:1] + hex[0:1])
		g = parse(hex[1:2] + hex[1:2])
		b = parse(hex[2:3] + hex[2:3])
		a = 255
	case 6:
		r, g, b = parse(hex[0:2]), parse(hex[2:4]), parse(hex[4:6])
		a = 255
	case 8:
		r, g, b = parse(hex[0:2]), parse(hex[2:4]), parse(hex[4:6])
		a = parse(hex[6:8])
	default:
		a = 255
	}
	return r, g, b, a
}

// rgbHex renders the opaque part of a color for backends that take
// opacity separately.
func rgbHex(s string) (hex string, opacity float64) {
	r, g, b, a := parseColor(s)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b), float64(a) / 255
}
