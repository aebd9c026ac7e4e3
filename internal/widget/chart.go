package widget

import (
	"fmt"

	"github.com/dashkite/dashgen/internal/figure"
	"github.com/dashkite/dashgen/internal/theme"
)

// Chart type names accepted in chart_type.
const (
	ChartBar     = "bar"
	ChartLine    = "line"
	ChartPie     = "pie"
	ChartScatter = "scatter"
	ChartArea    = "area"
	ChartHeatmap = "heatmap"
)

// Base chart font sizes in pixels before font scaling.
const (
	chartTitleSize  = 18
	chartAxisSize   = 14
	chartTickSize   = 12
	chartLegendSize = 12
)

// pieHoleFraction gives pies a donut center.
const pieHoleFraction = 0.3

// ChartConfig is the typed config block for chart widgets.
type ChartConfig struct {
	ChartType  string    `json:"chart_type"`
	Data       ChartData `json:"data"`
	Title      string    `json:"title,omitempty"`
	XLabel     string    `json:"x_label,omitempty"`
	YLabel     string    `json:"y_label,omitempty"`
	ShowLegend *bool     `json:"show_legend,omitempty"`
	ShowValues bool      `json:"show_values,omitempty"`
}

// ChartData is the data block shared by all chart types. Single-series
// charts use X/Y; multi-series charts share X across Series; pies accept
// Labels/Values as aliases for X/Y; heatmaps use Z.
type ChartData struct {
	X      []any       `json:"x,omitempty"`
	Y      []float64   `json:"y,omitempty"`
	Labels []any       `json:"labels,omitempty"`
	Values []float64   `json:"values,omitempty"`
	Z      [][]float64 `json:"z,omitempty"`
	Series []Series    `json:"series,omitempty"`
}

// Series is one named value sequence of a multi-series chart.
type Series struct {
	Name   string    `json:"name,omitempty"`
	Values []float64 `json:"values"`
}

// RenderChart builds a local figure for the configured chart type.
func RenderChart(cfg ChartConfig, th theme.Theme, fontScale float64) (*figure.Figure, error) {
	chartType := cfg.ChartType
	if chartType == "" {
		chartType = ChartBar
	}

	fig := figure.New()

	switch chartType {
	case ChartBar:
		buildBar(fig, cfg, th)
	case ChartLine:
		buildLine(fig, cfg, th)
	case ChartPie:
		buildPie(fig, cfg, th, fontScale)
	case ChartScatter:
		buildScatter(fig, cfg, th)
	case ChartArea:
		buildArea(fig, cfg, th)
	case ChartHeatmap:
		buildHeatmap(fig, cfg, th)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownChartType, chartType)
	}

	applyChartLayout(fig, cfg, th, fontScale)
	return fig, nil
}

// eachSeries invokes fn once per series: either the named multi-series
// entries or the single unnamed X/Y series.
func eachSeries(data ChartData, fn func(i int, name string, values []float64)) {
	if len(data.Series) > 0 {
		for i, s := range data.Series {
			name := s.Name
			if name == "" {
				name = fmt.Sprintf("Series %d", i+1)
			}
			fn(i, name, s.Values)
		}
		return
	}
	fn(0, "", data.Y)
}

func buildBar(fig *figure.Figure, cfg ChartConfig, th theme.Theme) {
	x := labels(cfg.Data.X)
	eachSeries(cfg.Data, func(i int, name string, values []float64) {
		fig.AddTrace(&figure.Bar{
			Name:       name,
			X:          x,
			Y:          values,
			Color:      th.PaletteColor(i),
			ShowValues: cfg.ShowValues,
		})
	})
}

func buildLine(fig *figure.Figure, cfg ChartConfig, th theme.Theme) {
	x := labels(cfg.Data.X)
	mode := figure.ModeLines
	if cfg.ShowValues {
		mode = figure.ModeLinesMarkers
	}
	eachSeries(cfg.Data, func(i int, name string, values []float64) {
		fig.AddTrace(&figure.Scatter{
			Name:       name,
			X:          x,
			Y:          values,
			Mode:       mode,
			Color:      th.PaletteColor(i),
			Width:      2,
			MarkerSize: 8,
		})
	})
}

func buildScatter(fig *figure.Figure, cfg ChartConfig, th theme.Theme) {
	x := labels(cfg.Data.X)
	eachSeries(cfg.Data, func(i int, name string, values []float64) {
		fig.AddTrace(&figure.Scatter{
			Name:       name,
			X:          x,
			Y:          values,
			Mode:       figure.ModeMarkers,
			Color:      th.PaletteColor(i),
			MarkerSize: 10,
		})
	})
}

func buildArea(fig *figure.Figure, cfg ChartConfig, th theme.Theme) {
	x := labels(cfg.Data.X)
	eachSeries(cfg.Data, func(i int, name string, values []float64) {
		fill := figure.FillToNextY
		if i == 0 {
			fill = figure.FillToZeroY
		}
		color := th.PaletteColor(i)
		fig.AddTrace(&figure.Scatter{
			Name:      name,
			X:         x,
			Y:         values,
			Mode:      figure.ModeLines,
			Fill:      fill,
			FillColor: withAlpha(color, 0.35),
			Color:     color,
			Width:     2,
		})
	})
}

func buildPie(fig *figure.Figure, cfg ChartConfig, th theme.Theme, fontScale float64) {
	names := cfg.Data.X
	if len(names) == 0 {
		names = cfg.Data.Labels
	}
	values := cfg.Data.Y
	if len(values) == 0 {
		values = cfg.Data.Values
	}

	ls := labels(names)
	colors := make([]string, len(ls))
	for i := range ls {
		colors[i] = th.PaletteColor(i)
	}

	fig.AddTrace(&figure.Pie{
		Labels:     ls,
		Values:     values,
		Colors:     colors,
		Hole:       pieHoleFraction,
		ShowLabels: cfg.ShowValues,
		TextFont:   figure.Font{Size: chartTickSize * fontScale, Color: th.Colors.Text, Family: th.Fonts.Body},
		Domain:     figure.FullRect(),
	})
}

func buildHeatmap(fig *figure.Figure, cfg ChartConfig, th theme.Theme) {
	var y []string
	if len(cfg.Data.Labels) > 0 {
		y = labels(cfg.Data.Labels)
	}
	z := cfg.Data.Z
	if len(z) == 0 {
		// Single-row fallback when values are given flat.
		if len(cfg.Data.Values) > 0 {
			z = [][]float64{cfg.Data.Values}
		}
	}

	fig.AddTrace(&figure.Heatmap{
		Z:        z,
		X:        labels(cfg.Data.X),
		Y:        y,
		MinColor: th.Colors.Surface,
		MaxColor: th.Colors.Primary,
	})
}

// applyChartLayout sets the widget-local title, axis labels, and scaled
// font sizes shared by every chart type.
func applyChartLayout(fig *figure.Figure, cfg ChartConfig, th theme.Theme, fontScale float64) {
	tick := chartTickSize * fontScale
	axisTitle := chartAxisSize * fontScale

	showLegend := true
	if cfg.ShowLegend != nil {
		showLegend = *cfg.ShowLegend
	}
	fig.Layout.ShowLegend = showLegend
	fig.Layout.Font = figure.Font{Size: tick, Color: th.Colors.Text, Family: th.Fonts.Body}
	fig.Layout.Margin = figure.Margin{L: 60, R: 40, T: 80, B: 60}

	if cfg.Title != "" {
		fig.Layout.Title = &figure.Title{
			Text: cfg.Title,
			X:    0.5,
			Font: figure.Font{Size: chartTitleSize * fontScale, Color: th.Colors.Text, Family: th.Fonts.Title},
		}
	}

	gridColor := th.Colors.Grid
	fig.SetAxis("x", figure.Axis{
		Domain:    figure.Span{Min: 0, Max: 1},
		Anchor:    "y",
		GridColor: gridColor,
		LineColor: gridColor,
		ShowGrid:  th.Chart.Gridlines,
		ShowTicks: true,
		TickFont:  figure.Font{Size: tick, Color: th.Colors.TextSecondary, Family: th.Fonts.Body},
		Title:     cfg.XLabel,
		TitleFont: figure.Font{Size: axisTitle, Color: th.Colors.TextSecondary, Family: th.Fonts.Body},
	})
	fig.SetAxis("y", figure.Axis{
		Domain:    figure.Span{Min: 0, Max: 1},
		Anchor:    "x",
		GridColor: gridColor,
		LineColor: gridColor,
		ShowGrid:  th.Chart.Gridlines,
		ShowTicks: true,
		TickFont:  figure.Font{Size: tick, Color: th.Colors.TextSecondary, Family: th.Fonts.Body},
		Title:     cfg.YLabel,
		TitleFont: figure.Font{Size: axisTitle, Color: th.Colors.TextSecondary, Family: th.Fonts.Body},
	})
}
