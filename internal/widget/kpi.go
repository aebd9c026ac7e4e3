package widget

import (
	"encoding/json"
	"strings"

	"github.com/dashkite/dashgen/internal/figure"
	"github.com/dashkite/dashgen/internal/theme"
)

// Base KPI font sizes in pixels before font scaling. The sparkline layout
// uses slightly smaller sizes than the plain indicator card.
const (
	kpiValueSize = 72
	kpiLabelSize = 24
	kpiDeltaSize = 28

	kpiSparkValueSize = 64
	kpiSparkLabelSize = 20
	kpiSparkDeltaSize = 24
)

// Delta arrows.
const (
	arrowUp   = "▲"
	arrowDown = "▼"
)

// KPIConfig is the typed config block for kpi widgets. Value accepts a
// number or a preformatted string.
type KPIConfig struct {
	Value          json.Number `json:"value"`
	Label          string      `json:"label,omitempty"`
	Delta          string      `json:"delta,omitempty"`
	DeltaGood      *bool       `json:"delta_good,omitempty"`
	FormatValue    string      `json:"format_value,omitempty"`
	Sparkline      []float64   `json:"sparkline,omitempty"`
	ContentVOffset float64     `json:"content_v_offset,omitempty"`
}

func (c KPIConfig) deltaGood() bool {
	if c.DeltaGood == nil {
		return true
	}
	return *c.DeltaGood
}

func (c KPIConfig) numericValue() float64 {
	v, err := c.Value.Float64()
	if err != nil {
		return 0
	}
	return v
}

func (c KPIConfig) displayValue() string {
	if v, err := c.Value.Float64(); err == nil {
		return formatNumber(v, c.FormatValue)
	}
	return c.Value.String()
}

// deltaIsPositive reports whether the delta string reads as an increase:
// a leading "+" or a leading digit with no "-" prefix.
func deltaIsPositive(delta string) bool {
	if delta == "" {
		return false
	}
	if strings.HasPrefix(delta, "+") {
		return true
	}
	return delta[0] >= '0' && delta[0] <= '9'
}

// deltaColor picks the theme color for the delta indicator: positive
// deltas are good unless delta_good is false, in which case the mapping
// inverts (e.g. rising error rates).
func deltaColor(delta string, good bool, th theme.Theme) string {
	if delta == "" {
		return th.Colors.Neutral
	}
	if deltaIsPositive(delta) == good {
		return th.Colors.Positive
	}
	return th.Colors.Negative
}

// deltaText renders the delta with its direction arrow.
func deltaText(delta string) string {
	arrow := arrowDown
	if deltaIsPositive(delta) {
		arrow = arrowUp
	}
	return arrow + strings.TrimLeft(delta, "+-")
}

// RenderKPI builds a KPI card: a plain indicator layout, or a layered
// sparkline + stacked text layout when a sparkline series is supplied.
func RenderKPI(cfg KPIConfig, th theme.Theme, fontScale float64) *figure.Figure {
	fig := figure.New()

	if len(cfg.Sparkline) > 0 {
		kpiWithSparkline(fig, cfg, th, fontScale)
	} else {
		simpleKPI(fig, cfg, th, fontScale)
	}

	return fig
}

func simpleKPI(fig *figure.Figure, cfg KPIConfig, th theme.Theme, fontScale float64) {
	off := cfg.ContentVOffset

	// Vertical placement within the widget. The delta line sits under the
	// number, so the number block starts higher when a delta is present.
	domainBottom := 0.05 + off
	if cfg.Delta != "" {
		domainBottom = 0.08 + off
	}
	domainTop := 0.82 + off
	deltaY := 0.12 + off

	fig.AddTrace(&figure.Indicator{
		Mode:       figure.IndicatorNumber,
		Value:      cfg.numericValue(),
		Display:    cfg.displayValue(),
		NumberFont: figure.Font{Size: kpiValueSize * fontScale, Color: th.Colors.Primary, Family: th.Fonts.Title},
		Title:      cfg.Label,
		TitleFont:  figure.Font{Size: kpiLabelSize * fontScale, Color: th.Colors.TextSecondary, Family: th.Fonts.Body},
		Domain:     figure.Rect{X: figure.Span{Min: 0, Max: 1}, Y: figure.Span{Min: domainBottom, Max: domainTop}},
	})

	if cfg.Delta != "" {
		fig.AddAnnotation(figure.Annotation{
			Text: deltaText(cfg.Delta),
			X:    0.5,
			Y:    deltaY,
			Font: figure.Font{Size: kpiDeltaSize * fontScale, Color: deltaColor(cfg.Delta, cfg.deltaGood(), th), Family: th.Fonts.Body},
		})
	}

	fig.Layout.Margin = figure.Margin{L: 40, R: 40, T: 40, B: 40}
}

func kpiWithSparkline(fig *figure.Figure, cfg KPIConfig, th theme.Theme, fontScale float64) {
	primary := th.Colors.Primary

	// Sparkline drawn behind the stacked value/label/delta text.
	fig.AddTrace(&figure.Scatter{
		Y:         cfg.Sparkline,
		Mode:      figure.ModeLines,
		Fill:      figure.FillToZeroY,
		FillColor: withAlpha(primary, 0.1),
		Color:     primary,
		Width:     2,
	})

	fig.AddAnnotation(figure.Annotation{
		Text: cfg.displayValue(),
		X:    0.5,
		Y:    0.7,
		Font: figure.Font{Size: kpiSparkValueSize * fontScale, Color: primary, Family: th.Fonts.Title},
	})
	fig.AddAnnotation(figure.Annotation{
		Text: cfg.Label,
		X:    0.5,
		Y:    0.35,
		Font: figure.Font{Size: kpiSparkLabelSize * fontScale, Color: th.Colors.TextSecondary, Family: th.Fonts.Body},
	})
	if cfg.Delta != "" {
		fig.AddAnnotation(figure.Annotation{
			Text: deltaText(cfg.Delta),
			X:    0.5,
			Y:    0.2,
			Font: figure.Font{Size: kpiSparkDeltaSize * fontScale, Color: deltaColor(cfg.Delta, cfg.deltaGood(), th), Family: th.Fonts.Body},
		})
	}

	fig.Layout.Margin = figure.Margin{L: 20, R: 20, T: 20, B: 20}
}
