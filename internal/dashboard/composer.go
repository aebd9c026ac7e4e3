// Package dashboard composes widget figures onto one shared plotting
// surface and renders the result to an image, optionally iterating with a
// vision evaluator until the layout is acceptable.
package dashboard

import (
	"fmt"

	"github.com/dashkite/dashgen/internal/export"
	"github.com/dashkite/dashgen/internal/figure"
	"github.com/dashkite/dashgen/internal/layout"
	"github.com/dashkite/dashgen/internal/spec"
	"github.com/dashkite/dashgen/internal/theme"
	"github.com/dashkite/dashgen/internal/widget"
)

// untitledTitleMargin replaces the style title margin when the dashboard
// has no title, reclaiming the reserved band for widgets.
const untitledTitleMargin = 0.02

// chartTitleGap lifts a chart's title annotation just above its widget
// region so per-widget margins cannot clip it.
const chartTitleGap = 0.02

// Compose lays every widget of d onto a single composite figure. Widgets
// keep their list order; widget i gets the axis pair "x{i+1}"/"y{i+1}"
// (the first keeps the plain "x"/"y") so independently scaled plots never
// share an axis. Domain-carrying traces are moved into the widget's grid
// region directly, annotations are remapped linearly, and global theming
// is applied once at the end.
func Compose(d *spec.Dashboard, th theme.Theme) (*figure.Figure, error) {
	d.ApplyDefaults()
	style := resolveStyle(d)

	titleMargin := style.TitleMargin
	if d.Title == "" {
		titleMargin = untitledTitleMargin
	}
	grid := layout.Grid{
		Columns:     d.Layout.Columns,
		Rows:        d.Layout.Rows,
		HSpacing:    style.HSpacing,
		VSpacing:    style.VSpacing,
		TitleMargin: titleMargin,
	}

	out := figure.New()
	for i, w := range d.Widgets {
		xDom, yDom := layout.ComputeDomain(layout.Cell{
			Row:     w.Position.Row,
			Col:     w.Position.Col,
			RowSpan: w.Position.RowSpan,
			ColSpan: w.Position.ColSpan,
		}, grid)

		wf, err := widget.Render(w, th, style.FontScale)
		if err != nil {
			return nil, fmt.Errorf("widget %d: %w", i, err)
		}

		mergeWidget(out, wf, i, xDom, yDom)
	}

	applyGlobalLayout(out, d, th, style)
	return out, nil
}

// mergeWidget moves one local widget figure into the composite at the
// given region.
func mergeWidget(out, wf *figure.Figure, index int, xDom, yDom figure.Span) {
	xID, yID := "x", "y"
	if index > 0 {
		xID = fmt.Sprintf("x%d", index+1)
		yID = fmt.Sprintf("y%d", index+1)
	}
	region := figure.Rect{X: xDom, Y: yDom}

	usesAxes := false
	for _, t := range wf.Traces {
		switch tr := t.(type) {
		case *figure.Bar:
			tr.XAxis, tr.YAxis = xID, yID
			usesAxes = true
		case *figure.Scatter:
			tr.XAxis, tr.YAxis = xID, yID
			usesAxes = true
		case *figure.Heatmap:
			tr.XAxis, tr.YAxis = xID, yID
			usesAxes = true
		case *figure.Pie:
			tr.Domain = region
		case *figure.Table:
			tr.Domain = region
		case *figure.Indicator:
			tr.Domain = region
		}
		out.AddTrace(t)
	}

	if usesAxes {
		xAxis := wf.Axes["x"]
		xAxis.Domain = xDom
		xAxis.Anchor = yID
		out.SetAxis(xID, xAxis)

		yAxis := wf.Axes["y"]
		yAxis.Domain = yDom
		yAxis.Anchor = xID
		out.SetAxis(yID, yAxis)
	}

	for _, a := range wf.Annotations {
		a.X = xDom.Lerp(a.X)
		a.Y = yDom.Lerp(a.Y)
		out.AddAnnotation(a)
	}

	// Chart titles leave the widget figure and float above its region,
	// where no per-widget margin can clip them.
	if t := wf.Layout.Title; t != nil && t.Text != "" {
		out.AddAnnotation(figure.Annotation{
			Text: t.Text,
			X:    xDom.Lerp(0.5),
			Y:    yDom.Max + chartTitleGap,
			Font: t.Font,
		})
	}
}

func resolveStyle(d *spec.Dashboard) layout.Style {
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
	return layout.Resolve(o)
}

func applyGlobalLayout(out *figure.Figure, d *spec.Dashboard, th theme.Theme, style layout.Style) {
	pad := float64(style.WidgetPadding)
	margin := figure.Margin{L: pad * 2, R: pad * 2, T: pad * 2, B: pad * 2}

	var title *figure.Title
	if d.Title != "" {
		margin.T += 40
		title = &figure.Title{
			Text: d.Title,
			Font: figure.Font{
				Size:   float64(style.TitleSize),
				Color:  th.Colors.Text,
				Family: th.Fonts.Title,
			},
			X: 0.5,
		}
	}

	out.Layout = figure.Layout{
		Title:      title,
		PaperColor: th.Colors.Background,
		PlotColor:  th.Colors.Background,
		Font: figure.Font{
			Size:   12 * style.FontScale,
			Color:  th.Colors.Text,
			Family: th.Fonts.Body,
		},
		Margin:     margin,
		ShowLegend: false,
	}
}

// RenderOptions controls a single dashboard render.
type RenderOptions struct {
	OutputDir  string
	Filename   string
	Format     export.Format
	Resolution string
	Scale      float64
}

// Render composes d and writes the image, returning the output path.
func Render(d *spec.Dashboard, th theme.Theme, opts RenderOptions) (string, error) {
	w, h, err := export.ParseResolution(opts.Resolution)
	if err != nil {
		return "", err
	}
	fig, err := Compose(d, th)
	if err != nil {
		return "", err
	}
	return export.Export(fig, export.Options{
		Dir:      opts.OutputDir,
		Filename: opts.Filename,
		Format:   opts.Format,
		Width:    w,
		Height:   h,
		Scale:    opts.Scale,
	})
}
