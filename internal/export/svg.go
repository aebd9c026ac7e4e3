package export

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

// svgCanvas emits primitives as SVG elements. svgo works in integer
// coordinates, so positions are rounded on the way out.
type svgCanvas struct {
	doc *svg.SVG
}

func newSVGCanvas(w, h int, out io.Writer) *svgCanvas {
	doc := svg.New(out)
	doc.Start(w, h)
	return &svgCanvas{doc: doc}
}

func px(v float64) int { return int(math.Round(v)) }

func fillStyle(color string) string {
	hex, opacity := rgbHex(color)
	if opacity < 1 {
		return fmt.Sprintf("fill:%s;fill-opacity:%.3f", hex, opacity)
	}
	return fmt.Sprintf("fill:%s", hex)
}

func strokeStyle(color string, width float64) string {
	hex, opacity := rgbHex(color)
	s := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.2f", hex, width)
	if opacity < 1 {
		s += fmt.Sprintf(";stroke-opacity:%.3f", opacity)
	}
	return s
}

func (c *svgCanvas) FillRect(x, y, w, h float64, color string) {
	c.doc.Rect(px(x), px(y), px(w), px(h), fillStyle(color))
}

func (c *svgCanvas) StrokeRect(x, y, w, h, width float64, color string) {
	c.doc.Rect(px(x), px(y), px(w), px(h), strokeStyle(color, width))
}

func (c *svgCanvas) Line(x1, y1, x2, y2, width float64, color string) {
	c.doc.Line(px(x1), px(y1), px(x2), px(y2), strokeStyle(color, width))
}

func (c *svgCanvas) Polygon(pts []Point, fill string) {
	if len(pts) < 3 {
		return
	}
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = px(p.X), px(p.Y)
	}
	c.doc.Polygon(xs, ys, fillStyle(fill))
}

func (c *svgCanvas) PolyLine(pts []Point, width float64, color string) {
	if len(pts) < 2 {
		return
	}
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = px(p.X), px(p.Y)
	}
	c.doc.Polyline(xs, ys, strokeStyle(color, width))
}

func (c *svgCanvas) Circle(cx, cy, r float64, fill string) {
	c.doc.Circle(px(cx), px(cy), px(r), fillStyle(fill))
}

func (c *svgCanvas) Text(s string, x, y, size float64, color, family string, anchor Anchor) {
	if family == "" {
		family = "sans-serif"
	}
	anchorName := "start"
	switch anchor {
	case AnchorMiddle:
		anchorName = "middle"
	case AnchorEnd:
		anchorName = "end"
	}
	hex, _ := rgbHex(color)
	style := fmt.Sprintf("font-family:%s;font-size:%.1fpx;fill:%s;text-anchor:%s",
		family, size, hex, anchorName)
	c.doc.Text(px(x), px(y), s, style)
}

func (c *svgCanvas) Flush() error {
	c.doc.End()
	return nil
}
