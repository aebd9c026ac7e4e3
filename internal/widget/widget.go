// Package widget renders the four dashboard widget types (chart, kpi,
// table, gauge) into self-contained figures addressed in the widget's own
// [0,1]x[0,1] coordinate space. Renderers are pure: (config, theme, font
// scale) in, figure out, no shared state.
package widget

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dashkite/dashgen/internal/figure"
	"github.com/dashkite/dashgen/internal/spec"
	"github.com/dashkite/dashgen/internal/theme"
)

// ErrUnknownWidgetType is returned for widget types outside the supported
// set. Composition fails rather than skipping the widget.
var ErrUnknownWidgetType = errors.New("unknown widget type")

// ErrUnknownChartType is returned for chart_type values outside the
// supported set.
var ErrUnknownChartType = errors.New("unknown chart type")

// Render builds the local figure for one spec widget. fontScale comes from
// the dashboard's resolved style and scales every font size the renderers
// emit.
func Render(w spec.Widget, th theme.Theme, fontScale float64) (*figure.Figure, error) {
	if fontScale <= 0 {
		fontScale = 1.0
	}

	switch w.Type {
	case spec.TypeChart:
		cfg, err := decodeConfig[ChartConfig](w.Config)
		if err != nil {
			return nil, err
		}
		return RenderChart(cfg, th, fontScale)
	case spec.TypeKPI:
		cfg, err := decodeConfig[KPIConfig](w.Config)
		if err != nil {
			return nil, err
		}
		return RenderKPI(cfg, th, fontScale), nil
	case spec.TypeTable:
		cfg, err := decodeConfig[TableConfig](w.Config)
		if err != nil {
			return nil, err
		}
		return RenderTable(cfg, th, fontScale), nil
	case spec.TypeGauge:
		cfg, err := decodeConfig[GaugeConfig](w.Config)
		if err != nil {
			return nil, err
		}
		return RenderGauge(cfg, th, fontScale), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownWidgetType, w.Type)
	}
}

// decodeConfig unmarshals a widget's free-form config block into the typed
// config struct for its widget type. Unknown keys are ignored; missing
// fields keep their documented defaults.
func decodeConfig[T any](raw json.RawMessage) (T, error) {
	var cfg T
	if len(raw) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: decoding widget config: %v", spec.ErrInvalidInput, err)
	}
	return cfg, nil
}

// labels converts a JSON-decoded heterogeneous list (strings, numbers) to
// display labels. Numeric values keep a compact representation.
func labels(vs []any) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		switch t := v.(type) {
		case string:
			out[i] = t
		case float64:
			out[i] = strconv.FormatFloat(t, 'g', -1, 64)
		case nil:
			out[i] = ""
		default:
			out[i] = fmt.Sprint(t)
		}
	}
	return out
}

// formatNumber renders a numeric value for display. An empty format gives
// a comma-grouped integer rendering; a format containing a fmt verb is
// applied directly (e.g. "%.1f%%").
func formatNumber(v float64, format string) string {
	if strings.Contains(format, "%") {
		return fmt.Sprintf(format, v)
	}
	return groupThousands(v)
}

// groupThousands formats v with comma-separated thousands and no decimals.
func groupThousands(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 0, 64)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// withAlpha appends an alpha channel to a #rrggbb color, producing the
// #rrggbbaa form the export backends understand.
func withAlpha(hex string, alpha float64) string {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return fmt.Sprintf("%s%02x", hex, int(alpha*255+0.5))
}
