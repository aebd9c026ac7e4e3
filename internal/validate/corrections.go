package validate

import (
	"fmt"
	"strings"

	"github.com/dashkite/dashgen/internal/layout"
	"github.com/dashkite/dashgen/internal/spec"
)

// Default grid growth caps. Columns grow in steps of two because widgets
// commonly span even column counts.
const (
	DefaultMaxRows    = 6
	DefaultMaxColumns = 24

	paddingStep  = 10
	paddingFloor = 10
)

// Correction is one applied spec change. Concrete types carry the typed
// parameters; Record flattens them for JSON output.
type Correction interface {
	apply(d *spec.Dashboard)
	Record() CorrectionRecord
}

// CorrectionRecord is the reportable form of a correction.
type CorrectionRecord struct {
	Kind   string    `json:"kind"`
	Issue  IssueType `json:"issue"`
	Detail string    `json:"detail"`
}

// GridCorrection resizes the dashboard grid.
type GridCorrection struct {
	issue   IssueType
	Rows    int
	Columns int
}

func (c GridCorrection) apply(d *spec.Dashboard) {
	d.Layout.Rows = c.Rows
	d.Layout.Columns = c.Columns
}

func (c GridCorrection) Record() CorrectionRecord {
	return CorrectionRecord{
		Kind:   "grid",
		Issue:  c.issue,
		Detail: fmt.Sprintf("grid resized to %d columns x %d rows", c.Columns, c.Rows),
	}
}

// SpanCorrection changes one widget's span.
type SpanCorrection struct {
	issue   IssueType
	Widget  int
	ColSpan int
	RowSpan int
}

func (c SpanCorrection) apply(d *spec.Dashboard) {
	if c.Widget < 0 || c.Widget >= len(d.Widgets) {
		return
	}
	d.Widgets[c.Widget].Position.ColSpan = c.ColSpan
	d.Widgets[c.Widget].Position.RowSpan = c.RowSpan
}

func (c SpanCorrection) Record() CorrectionRecord {
	return CorrectionRecord{
		Kind:   "span",
		Issue:  c.issue,
		Detail: fmt.Sprintf("widget %d resized to colspan=%d rowspan=%d", c.Widget, c.ColSpan, c.RowSpan),
	}
}

// PaddingCorrection adjusts the style widget padding.
type PaddingCorrection struct {
	issue   IssueType
	Padding int
}

func (c PaddingCorrection) apply(d *spec.Dashboard) {
	if d.Style == nil {
		d.Style = &spec.Style{}
	}
	p := c.Padding
	d.Style.WidgetPadding = &p
}

func (c PaddingCorrection) Record() CorrectionRecord {
	return CorrectionRecord{
		Kind:   "padding",
		Issue:  c.issue,
		Detail: fmt.Sprintf("widget padding set to %d", c.Padding),
	}
}

// Engine maps issues to corrections under configurable grid caps.
type Engine struct {
	MaxRows    int
	MaxColumns int
}

// NewEngine returns an engine with the default caps.
func NewEngine() Engine {
	return Engine{MaxRows: DefaultMaxRows, MaxColumns: DefaultMaxColumns}
}

// Correct applies one correction per correctable issue to a deep copy of
// d, critical issues first. Each correction reads the state left by the
// previous one. The returned slice may be shorter than the issue list
// when caps are exhausted.
func (e Engine) Correct(res Result, d *spec.Dashboard) (*spec.Dashboard, []Correction) {
	working := d.Clone()
	var applied []Correction
	for _, issue := range sortedIssues(res.Issues) {
		c := e.correctionFor(issue, working)
		if c == nil {
			continue
		}
		c.apply(working)
		applied = append(applied, c)
	}
	return working, applied
}

func (e Engine) correctionFor(issue Issue, d *spec.Dashboard) Correction {
	switch issue.Type {
	case IssueOverlap:
		return e.correctOverlap(issue, d)
	case IssueSpacing:
		return correctSpacing(issue, d)
	case IssueTruncation, IssueSizing:
		return e.growWidget(issue, d)
	case IssueAlignment, IssueReadability:
		if d.Layout.Rows < e.MaxRows {
			return GridCorrection{issue: issue.Type, Rows: d.Layout.Rows + 1, Columns: d.Layout.Columns}
		}
		return nil
	default:
		return nil
	}
}

// correctOverlap relieves overlapping widgets: more rows first, then more
// columns, then shrinking the first spanning widget.
func (e Engine) correctOverlap(issue Issue, d *spec.Dashboard) Correction {
	if d.Layout.Rows < e.MaxRows {
		return GridCorrection{issue: issue.Type, Rows: d.Layout.Rows + 1, Columns: d.Layout.Columns}
	}
	if d.Layout.Columns < e.MaxColumns {
		cols := d.Layout.Columns + 2
		if cols > e.MaxColumns {
			cols = e.MaxColumns
		}
		return GridCorrection{issue: issue.Type, Rows: d.Layout.Rows, Columns: cols}
	}
	for _, w := range affectedWidgets(issue, d) {
		pos := d.Widgets[w].Position
		if pos.ColSpan > 1 {
			return SpanCorrection{issue: issue.Type, Widget: w, ColSpan: pos.ColSpan - 1, RowSpan: pos.RowSpan}
		}
		if pos.RowSpan > 1 {
			return SpanCorrection{issue: issue.Type, Widget: w, ColSpan: pos.ColSpan, RowSpan: pos.RowSpan - 1}
		}
	}
	return nil
}

// correctSpacing nudges widget padding based on the description wording:
// crowding grows it, wasted space shrinks it (never below the floor).
func correctSpacing(issue Issue, d *spec.Dashboard) Correction {
	desc := strings.ToLower(issue.Description)
	current := currentPadding(d)
	switch {
	case strings.Contains(desc, "too close") || strings.Contains(desc, "cramped"):
		return PaddingCorrection{issue: issue.Type, Padding: current + paddingStep}
	case strings.Contains(desc, "too far") || strings.Contains(desc, "wasted"):
		next := current - paddingStep
		if next < paddingFloor {
			next = paddingFloor
		}
		if next == current {
			return nil
		}
		return PaddingCorrection{issue: issue.Type, Padding: next}
	default:
		return nil
	}
}

// growWidget widens the first affected widget with room to its right,
// falling back to growing it downward.
func (e Engine) growWidget(issue Issue, d *spec.Dashboard) Correction {
	for _, w := range affectedWidgets(issue, d) {
		pos := d.Widgets[w].Position
		if pos.Col+pos.ColSpan < d.Layout.Columns {
			return SpanCorrection{issue: issue.Type, Widget: w, ColSpan: pos.ColSpan + 1, RowSpan: pos.RowSpan}
		}
		if pos.Row+pos.RowSpan < d.Layout.Rows {
			return SpanCorrection{issue: issue.Type, Widget: w, ColSpan: pos.ColSpan, RowSpan: pos.RowSpan + 1}
		}
	}
	return nil
}

// affectedWidgets yields the issue's valid widget indices. Span
// corrections only target widgets the evaluator named; an issue with no
// usable indices yields none rather than guessing at widget 0.
func affectedWidgets(issue Issue, d *spec.Dashboard) []int {
	var out []int
	for _, w := range issue.AffectedWidgets {
		if w >= 0 && w < len(d.Widgets) {
			out = append(out, w)
		}
	}
	return out
}

func currentPadding(d *spec.Dashboard) int {
	var o layout.Overrides
	if s := d.Style; s != nil {
		o = layout.Overrides{
			Preset:        s.Preset,
			FontScale:     s.FontScale,
			HSpacing:      s.HSpacing,
			VSpacing:      s.VSpacing,
			WidgetPadding: s.WidgetPadding,
			TitleMargin:   s.TitleMargin,
			TitleSize:     s.TitleSize,
		}
	}
	return layout.Resolve(o).WidgetPadding
}
