package widget

import (
	"github.com/dashkite/dashgen/internal/figure"
	"github.com/dashkite/dashgen/internal/theme"
)

// Table row heights in normalized-pixel units before export scaling.
const (
	tableHeaderHeight = 40
	tableCellHeight   = 35
	tableHeaderSize   = 14
	tableCellSize     = 13
	tableTitleSize    = 20
)

// TableConfig is the typed config block for table widgets. Rows are
// row-major as supplied; the renderer transposes to the column-major form
// the drawing path consumes.
type TableConfig struct {
	Headers         []string  `json:"headers"`
	Rows            [][]any   `json:"rows"`
	Title           string    `json:"title,omitempty"`
	ColumnWidths    []float64 `json:"column_widths,omitempty"`
	HighlightColumn *int      `json:"highlight_column,omitempty"`
	AlternatingRows *bool     `json:"alternating_rows,omitempty"`
}

func (c TableConfig) alternating() bool {
	if c.AlternatingRows == nil {
		return true
	}
	return *c.AlternatingRows
}

// RenderTable builds a styled data table figure.
func RenderTable(cfg TableConfig, th theme.Theme, fontScale float64) *figure.Figure {
	fig := figure.New()

	numCols := len(cfg.Headers)
	numRows := len(cfg.Rows)

	fig.AddTrace(&figure.Table{
		Headers:      cfg.Headers,
		Columns:      transpose(cfg.Rows, numCols),
		ColumnWidths: cfg.ColumnWidths,
		HeaderFill:   headerColors(cfg, th, numCols),
		CellFill:     cellColors(cfg, th, numRows, numCols),
		HeaderFont:   figure.Font{Size: tableHeaderSize * fontScale, Color: th.Colors.Background, Family: th.Fonts.Title},
		CellFont:     figure.Font{Size: tableCellSize * fontScale, Color: th.Colors.Text, Family: th.Fonts.Body},
		HeaderHeight: tableHeaderHeight,
		CellHeight:   tableCellHeight,
		Domain:       figure.FullRect(),
	})

	top := 20.0
	if cfg.Title != "" {
		top = 60
		fig.Layout.Title = &figure.Title{
			Text: cfg.Title,
			X:    0.5,
			Font: figure.Font{Size: tableTitleSize * fontScale, Color: th.Colors.Text, Family: th.Fonts.Title},
		}
	}
	fig.Layout.Margin = figure.Margin{L: 20, R: 20, T: top, B: 20}

	return fig
}

// transpose converts row-major input rows into one string slice per
// column, the order the drawing path paints cells in. Ragged rows pad
// with empty cells.
func transpose(rows [][]any, numCols int) [][]string {
	cols := make([][]string, numCols)
	for c := range cols {
		cols[c] = make([]string, len(rows))
	}
	for r, row := range rows {
		vals := labels(row)
		for c := 0; c < numCols; c++ {
			if c < len(vals) {
				cols[c][r] = vals[c]
			}
		}
	}
	return cols
}

// headerColors fills header cells with the primary color, switching the
// highlighted column to the secondary color.
func headerColors(cfg TableConfig, th theme.Theme, numCols int) []string {
	out := make([]string, numCols)
	for i := range out {
		out[i] = th.Colors.Primary
	}
	if h := cfg.HighlightColumn; h != nil && *h >= 0 && *h < numCols {
		out[*h] = th.Colors.Secondary
	}
	return out
}

// cellColors builds the per-column background matrix: alternating row
// shading with the highlight column tinted uniformly.
func cellColors(cfg TableConfig, th theme.Theme, numRows, numCols int) [][]string {
	base := make([]string, numRows)
	for r := range base {
		if cfg.alternating() && r%2 == 1 {
			base[r] = th.Colors.Surface
		} else {
			base[r] = th.Colors.Background
		}
	}

	out := make([][]string, numCols)
	for c := range out {
		col := make([]string, numRows)
		copy(col, base)
		out[c] = col
	}

	if h := cfg.HighlightColumn; h != nil && *h >= 0 && *h < numCols {
		for r := range out[*h] {
			out[*h][r] = th.Colors.Surface
		}
	}

	return out
}
