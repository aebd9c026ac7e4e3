// Package layout translates abstract grid placements into absolute
// normalized regions on the shared plotting surface.
//
// The surface is divided into columns x rows equal cells net of spacing.
// Row 0 is the visual top; the underlying coordinate system is bottom-up,
// so vertical extents are computed from y=1 downward. ComputeDomain is
// deliberately permissive: out-of-grid placements and large negative title
// margins produce out-of-surface or negative-size domains without error.
// Callers that want fail-fast behavior validate the spec before composing.
package layout

import "github.com/dashkite/dashgen/internal/figure"

// Grid describes the plotting surface subdivision.
type Grid struct {
	Columns     int
	Rows        int
	HSpacing    float64
	VSpacing    float64
	TitleMargin float64
}

// Cell is one widget's grid placement. Row and Col are 0-indexed.
type Cell struct {
	Row     int
	Col     int
	RowSpan int
	ColSpan int
}

// ComputeDomain returns the absolute normalized x and y spans the cell
// occupies on the plotting surface.
//
// TitleMargin is the vertical fraction reserved above row 0 for a title.
// Negative values push all rows upward past the nominal title line; this
// is the escape hatch the correction and iteration paths use to close up
// empty space under a title.
func ComputeDomain(c Cell, g Grid) (x, y figure.Span) {
	cellWidth := (1.0 - g.HSpacing*float64(g.Columns+1)) / float64(g.Columns)
	cellHeight := (1.0 - g.TitleMargin - g.VSpacing*float64(g.Rows+1)) / float64(g.Rows)

	x.Min = g.HSpacing + float64(c.Col)*(cellWidth+g.HSpacing)
	x.Max = x.Min + float64(c.ColSpan)*cellWidth + float64(c.ColSpan-1)*g.HSpacing

	y.Max = 1.0 - g.TitleMargin - g.VSpacing - float64(c.Row)*(cellHeight+g.VSpacing)
	y.Min = y.Max - float64(c.RowSpan)*cellHeight - float64(c.RowSpan-1)*g.VSpacing

	return x, y
}
