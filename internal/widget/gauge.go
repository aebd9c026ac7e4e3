package widget

import (
	"sort"

	"github.com/dashkite/dashgen/internal/figure"
	"github.com/dashkite/dashgen/internal/theme"
)

// Base gauge font sizes in pixels before font scaling.
const (
	gaugeValueSize = 48
	gaugeLabelSize = 20
	gaugeTickSize  = 12
)

// ThresholdLineFraction places the fixed secondary threshold line at this
// fraction of the gauge maximum.
const ThresholdLineFraction = 0.9

const gaugeThresholdWidth = 4

// Threshold is one colored gauge threshold.
type Threshold struct {
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"`
	Label string  `json:"label,omitempty"`
}

// GaugeConfig is the typed config block for gauge widgets.
type GaugeConfig struct {
	Value      float64     `json:"value"`
	Min        float64     `json:"min"`
	Max        *float64    `json:"max,omitempty"`
	Label      string      `json:"label,omitempty"`
	Unit       string      `json:"unit,omitempty"`
	Thresholds []Threshold `json:"thresholds,omitempty"`
}

func (c GaugeConfig) max() float64 {
	if c.Max == nil {
		return 100
	}
	return *c.Max
}

// barColor resolves the indicator bar color: thresholds sorted by value
// descending, the first threshold the value falls under wins (i.e. the
// smallest threshold >= value). Values above every threshold, or gauges
// without thresholds, use the theme primary.
func barColor(cfg GaugeConfig, th theme.Theme) string {
	if len(cfg.Thresholds) == 0 {
		return th.Colors.Primary
	}

	sorted := make([]Threshold, len(cfg.Thresholds))
	copy(sorted, cfg.Thresholds)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Value > sorted[j].Value })

	color := th.Colors.Primary
	for _, t := range sorted {
		if cfg.Value <= t.Value {
			if t.Color != "" {
				color = t.Color
			} else {
				color = th.Colors.Primary
			}
		}
	}
	return color
}

// gaugeSteps builds contiguous background bands from the thresholds,
// ascending from the gauge minimum.
func gaugeSteps(cfg GaugeConfig, th theme.Theme) []figure.GaugeStep {
	if len(cfg.Thresholds) == 0 {
		return nil
	}

	sorted := make([]Threshold, len(cfg.Thresholds))
	copy(sorted, cfg.Thresholds)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Value < sorted[j].Value })

	steps := make([]figure.GaugeStep, 0, len(sorted))
	prev := cfg.Min
	for _, t := range sorted {
		color := t.Color
		if color == "" {
			color = th.Colors.Neutral
		}
		steps = append(steps, figure.GaugeStep{Range: [2]float64{prev, t.Value}, Color: color})
		prev = t.Value
	}
	return steps
}

// RenderGauge builds a gauge dial figure.
func RenderGauge(cfg GaugeConfig, th theme.Theme, fontScale float64) *figure.Figure {
	fig := figure.New()

	fig.AddTrace(&figure.Indicator{
		Mode:       figure.IndicatorGauge,
		Value:      cfg.Value,
		Display:    formatNumber(cfg.Value, ""),
		Suffix:     cfg.Unit,
		NumberFont: figure.Font{Size: gaugeValueSize * fontScale, Color: th.Colors.Primary, Family: th.Fonts.Title},
		Title:      cfg.Label,
		TitleFont:  figure.Font{Size: gaugeLabelSize * fontScale, Color: th.Colors.TextSecondary, Family: th.Fonts.Body},
		Gauge: &figure.Gauge{
			Min:         cfg.Min,
			Max:         cfg.max(),
			BarColor:    barColor(cfg, th),
			Background:  th.Colors.Surface,
			BorderColor: th.Colors.Grid,
			BorderWidth: 2,
			Steps:       gaugeSteps(cfg, th),
			Threshold: &figure.GaugeThreshold{
				Value: cfg.max() * ThresholdLineFraction,
				Color: th.Colors.Negative,
				Width: gaugeThresholdWidth,
			},
			TickFont: figure.Font{Size: gaugeTickSize * fontScale, Color: th.Colors.TextSecondary, Family: th.Fonts.Body},
		},
		Domain: figure.FullRect(),
	})

	fig.Layout.Margin = figure.Margin{L: 40, R: 40, T: 80, B: 40}
	return fig
}
