// Package spec defines the JSON dashboard specification and its parsing,
// defaulting, validation, and copy semantics. A spec is the single input
// to composition, and the unit the correction and iteration paths mutate
// copies of.
package spec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidInput marks malformed or structurally invalid specs. It is
// surfaced immediately and never retried.
var ErrInvalidInput = errors.New("invalid input")

// Widget type names.
const (
	TypeChart = "chart"
	TypeKPI   = "kpi"
	TypeTable = "table"
	TypeGauge = "gauge"
)

// Defaults for the layout block.
const (
	DefaultColumns     = 12
	DefaultRows        = 2
	DefaultPadding     = 20
	DefaultAspectRatio = "16:9"
)

// Dashboard is the top-level dashboard specification.
type Dashboard struct {
	Title   string   `json:"title,omitempty"`
	Layout  Layout   `json:"layout"`
	Style   *Style   `json:"style,omitempty"`
	Widgets []Widget `json:"widgets"`
}

// Layout is the grid block of a spec.
type Layout struct {
	Columns     int    `json:"columns"`
	Rows        int    `json:"rows"`
	Padding     int    `json:"padding"`
	AspectRatio string `json:"aspect_ratio,omitempty"`
}

// Style is the optional style block. Pointer fields distinguish "explicitly
// set" from "use the preset value"; only explicit fields override presets.
type Style struct {
	Preset        string   `json:"preset,omitempty"`
	FontScale     *float64 `json:"font_scale,omitempty"`
	HSpacing      *float64 `json:"h_spacing,omitempty"`
	VSpacing      *float64 `json:"v_spacing,omitempty"`
	WidgetPadding *int     `json:"widget_padding,omitempty"`
	TitleSize     *int     `json:"title_size,omitempty"`
	TitleMargin   *float64 `json:"title_margin,omitempty"`
}

// Position is a widget's grid placement. Row 0 is the visual top.
type Position struct {
	Row     int `json:"row"`
	Col     int `json:"col"`
	RowSpan int `json:"rowspan,omitempty"`
	ColSpan int `json:"colspan,omitempty"`
}

// Widget is one entry of the spec's widget list. Config is the
// widget-type-specific block; each renderer decodes its own subset and
// ignores unknown keys.
type Widget struct {
	Type     string          `json:"type"`
	Position Position        `json:"position"`
	Config   json.RawMessage `json:"config,omitempty"`
}

// Parse decodes a dashboard spec from JSON and applies defaults.
func Parse(data []byte) (*Dashboard, error) {
	var d Dashboard
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: parsing spec JSON: %v", ErrInvalidInput, err)
	}
	d.ApplyDefaults()
	return &d, nil
}

// Read decodes a dashboard spec from a reader (file or stdin).
func Read(r io.Reader) (*Dashboard, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading spec: %v", ErrInvalidInput, err)
	}
	return Parse(data)
}

// ApplyDefaults fills zero-value layout and position fields with their
// documented defaults.
func (d *Dashboard) ApplyDefaults() {
	if d.Layout.Columns == 0 {
		d.Layout.Columns = DefaultColumns
	}
	if d.Layout.Rows == 0 {
		d.Layout.Rows = DefaultRows
	}
	if d.Layout.Padding == 0 {
		d.Layout.Padding = DefaultPadding
	}
	if d.Layout.AspectRatio == "" {
		d.Layout.AspectRatio = DefaultAspectRatio
	}
	for i := range d.Widgets {
		if d.Widgets[i].Position.RowSpan == 0 {
			d.Widgets[i].Position.RowSpan = 1
		}
		if d.Widgets[i].Position.ColSpan == 0 {
			d.Widgets[i].Position.ColSpan = 1
		}
	}
}

// Clone returns a deep copy of the spec via a JSON round trip. Correction
// and iteration paths always mutate clones so earlier iterations' specs
// stay inspectable.
func (d *Dashboard) Clone() *Dashboard {
	data, err := json.Marshal(d)
	if err != nil {
		// A Dashboard is plain data assembled from decoded JSON; marshal
		// can only fail on exotic hand-built values.
		panic(fmt.Sprintf("spec: clone marshal: %v", err))
	}
	var out Dashboard
	if err := json.Unmarshal(data, &out); err != nil {
		panic(fmt.Sprintf("spec: clone unmarshal: %v", err))
	}
	return &out
}

// Validate rejects specs whose widgets fall outside the grid or overlap.
// The layout engine itself stays permissive; this is the fail-fast gate the
// CLI and composer call before any geometry runs.
func (d *Dashboard) Validate() error {
	if d.Layout.Columns < 1 || d.Layout.Rows < 1 {
		return fmt.Errorf("%w: grid must have at least 1 column and 1 row, got %dx%d",
			ErrInvalidInput, d.Layout.Columns, d.Layout.Rows)
	}

	type rect struct{ r0, c0, r1, c1 int }
	seen := make([]rect, 0, len(d.Widgets))

	for i, w := range d.Widgets {
		p := w.Position
		if p.Row < 0 || p.Col < 0 || p.RowSpan < 1 || p.ColSpan < 1 {
			return fmt.Errorf("%w: widget %d has invalid position row=%d col=%d rowspan=%d colspan=%d",
				ErrInvalidInput, i, p.Row, p.Col, p.RowSpan, p.ColSpan)
		}
		if p.Row+p.RowSpan > d.Layout.Rows {
			return fmt.Errorf("%w: widget %d exceeds grid rows (row %d + rowspan %d > %d)",
				ErrInvalidInput, i, p.Row, p.RowSpan, d.Layout.Rows)
		}
		if p.Col+p.ColSpan > d.Layout.Columns {
			return fmt.Errorf("%w: widget %d exceeds grid columns (col %d + colspan %d > %d)",
				ErrInvalidInput, i, p.Col, p.ColSpan, d.Layout.Columns)
		}

		cur := rect{p.Row, p.Col, p.Row + p.RowSpan, p.Col + p.ColSpan}
		for j, prev := range seen {
			if cur.r0 < prev.r1 && prev.r0 < cur.r1 && cur.c0 < prev.c1 && prev.c0 < cur.c1 {
				return fmt.Errorf("%w: widgets %d and %d overlap on the grid", ErrInvalidInput, j, i)
			}
		}
		seen = append(seen, cur)
	}

	return nil
}

// ConfigMap decodes a widget's config block into a generic map, for
// summaries and diagnostics. Returns an empty map when config is absent.
func (w Widget) ConfigMap() map[string]any {
	m := make(map[string]any)
	if len(w.Config) > 0 {
		_ = json.Unmarshal(w.Config, &m)
	}
	return m
}
