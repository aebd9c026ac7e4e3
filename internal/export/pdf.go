package export

import (
	"io"

	"github.com/go-pdf/fpdf"
)

// pdfCanvas draws primitives onto a single custom-sized PDF page. Units
// are points, one per pixel, so the page matches the requested raster
// dimensions exactly.
type pdfCanvas struct {
	doc *fpdf.Fpdf
	out io.Writer
}

func newPDFCanvas(w, h int, out io.Writer) *pdfCanvas {
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: float64(w), Ht: float64(h)},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()
	return &pdfCanvas{doc: doc, out: out}
}

func (c *pdfCanvas) withAlpha(a uint8, draw func()) {
	if a < 255 {
		c.doc.SetAlpha(float64(a)/255, "Normal")
		draw()
		c.doc.SetAlpha(1, "Normal")
		return
	}
	draw()
}

func (c *pdfCanvas) FillRect(x, y, w, h float64, color string) {
	r, g, b, a := parseColor(color)
	c.doc.SetFillColor(int(r), int(g), int(b))
	c.withAlpha(a, func() { c.doc.Rect(x, y, w, h, "F") })
}

func (c *pdfCanvas) StrokeRect(x, y, w, h, width float64, color string) {
	r, g, b, a := parseColor(color)
	c.doc.SetDrawColor(int(r), int(g), int(b))
	c.doc.SetLineWidth(width)
	c.withAlpha(a, func() { c.doc.Rect(x, y, w, h, "D") })
}

func (c *pdfCanvas) Line(x1, y1, x2, y2, width float64, color string) {
	r, g, b, a := parseColor(color)
	c.doc.SetDrawColor(int(r), int(g), int(b))
	c.doc.SetLineWidth(width)
	c.withAlpha(a, func() { c.doc.Line(x1, y1, x2, y2) })
}

func (c *pdfCanvas) Polygon(pts []Point, fill string) {
	if len(pts) < 3 {
		return
	}
	r, g, b, a := parseColor(fill)
	c.doc.SetFillColor(int(r), int(g), int(b))
	points := make([]fpdf.PointType, len(pts))
	for i, p := range pts {
		points[i] = fpdf.PointType{X: p.X, Y: p.Y}
	}
	c.withAlpha(a, func() { c.doc.Polygon(points, "F") })
}

func (c *pdfCanvas) PolyLine(pts []Point, width float64, color string) {
	if len(pts) < 2 {
		return
	}
	r, g, b, a := parseColor(color)
	c.doc.SetDrawColor(int(r), int(g), int(b))
	c.doc.SetLineWidth(width)
	c.withAlpha(a, func() {
		for i := 1; i < len(pts); i++ {
			c.doc.Line(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y)
		}
	})
}

func (c *pdfCanvas) Circle(cx, cy, r float64, fill string) {
	cr, cg, cb, a := parseColor(fill)
	c.doc.SetFillColor(int(cr), int(cg), int(cb))
	c.withAlpha(a, func() { c.doc.Circle(cx, cy, r, "F") })
}

func (c *pdfCanvas) Text(s string, x, y, size float64, color, family string, anchor Anchor) {
	_ = family // core Helvetica serves all families
	r, g, b, _ := parseColor(color)
	c.doc.SetTextColor(int(r), int(g), int(b))
	c.doc.SetFont("Helvetica", "", size)
	switch anchor {
	case AnchorMiddle:
		x -= c.doc.GetStringWidth(s) / 2
	case AnchorEnd:
		x -= c.doc.GetStringWidth(s)
	}
	c.doc.Text(x, y, s)
}

func (c *pdfCanvas) Flush() error {
	return c.doc.Output(c.out)
}
