package export

import (
	"fmt"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// pngCanvas rasterizes primitives into an RGBA image via gg. A single
// embedded typeface serves all text; faces are cached per point size
// because truetype face construction is comparatively expensive.
type pngCanvas struct {
	ctx   *gg.Context
	out   io.Writer
	font  *truetype.Font
	faces map[int]font.Face
}

func newPNGCanvas(w, h int, out io.Writer) (*pngCanvas, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse embedded font: %w", err)
	}
	return &pngCanvas{
		ctx:   gg.NewContext(w, h),
		out:   out,
		font:  f,
		faces: make(map[int]font.Face),
	}, nil
}

func (c *pngCanvas) face(size float64) font.Face {
	key := int(size)
	if key < 1 {
		key = 1
	}
	if f, ok := c.faces[key]; ok {
		return f
	}
	f := truetype.NewFace(c.font, &truetype.Options{Size: float64(key)})
	c.faces[key] = f
	return f
}

func (c *pngCanvas) setColor(color string) {
	r, g, b, a := parseColor(color)
	c.ctx.SetRGBA255(int(r), int(g), int(b), int(a))
}

func (c *pngCanvas) FillRect(x, y, w, h float64, color string) {
	c.setColor(color)
	c.ctx.DrawRectangle(x, y, w, h)
	c.ctx.Fill()
}

func (c *pngCanvas) StrokeRect(x, y, w, h, width float64, color string) {
	c.setColor(color)
	c.ctx.SetLineWidth(width)
	c.ctx.DrawRectangle(x, y, w, h)
	c.ctx.Stroke()
}

func (c *pngCanvas) Line(x1, y1, x2, y2, width float64, color string) {
	c.setColor(color)
	c.ctx.SetLineWidth(width)
	c.ctx.DrawLine(x1, y1, x2, y2)
	c.ctx.Stroke()
}

func (c *pngCanvas) Polygon(pts []Point, fill string) {
	if len(pts) < 3 {
		return
	}
	c.setColor(fill)
	c.ctx.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.ctx.LineTo(p.X, p.Y)
	}
	c.ctx.ClosePath()
	c.ctx.Fill()
}

func (c *pngCanvas) PolyLine(pts []Point, width float64, color string) {
	if len(pts) < 2 {
		return
	}
	c.setColor(color)
	c.ctx.SetLineWidth(width)
	c.ctx.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.ctx.LineTo(p.X, p.Y)
	}
	c.ctx.Stroke()
}

func (c *pngCanvas) Circle(cx, cy, r float64, fill string) {
	c.setColor(fill)
	c.ctx.DrawCircle(cx, cy, r)
	c.ctx.Fill()
}

func (c *pngCanvas) Text(s string, x, y, size float64, color, family string, anchor Anchor) {
	_ = family // one embedded face covers all families
	c.setColor(color)
	c.ctx.SetFontFace(c.face(size))
	var ax float64
	switch anchor {
	case AnchorMiddle:
		ax = 0.5
	case AnchorEnd:
		ax = 1
	}
	c.ctx.DrawStringAnchored(s, x, y, ax, 0)
}

func (c *pngCanvas) Flush() error {
	return c.ctx.EncodePNG(c.out)
}
