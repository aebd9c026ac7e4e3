package widget

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/dashkite/dashgen/internal/figure"
	"github.com/dashkite/dashgen/internal/spec"
	"github.com/dashkite/dashgen/internal/theme"
)

func testTheme(t *testing.T) theme.Theme {
	t.Helper()
	th, err := theme.Load("corporate")
	if err != nil {
		t.Fatalf("load theme: %v", err)
	}
	return th
}

func TestRenderBarChart(t *testing.T) {
	th := testTheme(t)
	fig, err := RenderChart(ChartConfig{
		ChartType: ChartBar,
		Data:      ChartData{X: []any{"a", "b"}, Y: []float64{1, 2}},
	}, th, 1.0)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if len(fig.Traces) != 1 {
		t.Fatalf("traces = %d, want 1", len(fig.Traces))
	}
	bar, ok := fig.Traces[0].(*figure.Bar)
	if !ok {
		t.Fatalf("trace type = %T, want *figure.Bar", fig.Traces[0])
	}
	if len(bar.X) != 2 || bar.X[0] != "a" || bar.X[1] != "b" {
		t.Errorf("bar X = %v, want [a b]", bar.X)
	}
	if len(bar.Y) != 2 || bar.Y[0] != 1 || bar.Y[1] != 2 {
		t.Errorf("bar Y = %v, want [1 2]", bar.Y)
	}
	if bar.Color != th.PaletteColor(0) {
		t.Errorf("bar color = %q, want palette[0] %q", bar.Color, th.PaletteColor(0))
	}
	if bar.Name != "" {
		t.Errorf("single series should be unnamed, got %q", bar.Name)
	}
}

func TestRenderChartPaletteCycling(t *testing.T) {
	th := testTheme(t)
	n := len(th.Chart.Palette) + 2
	series := make([]Series, n)
	for i := range series {
		series[i] = Series{Values: []float64{float64(i)}}
	}

	fig, err := RenderChart(ChartConfig{
		ChartType: ChartLine,
		Data:      ChartData{X: []any{"a"}, Series: series},
	}, th, 1.0)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(fig.Traces) != n {
		t.Fatalf("traces = %d, want %d", len(fig.Traces), n)
	}

	first := fig.Traces[0].(*figure.Scatter)
	wrapped := fig.Traces[len(th.Chart.Palette)].(*figure.Scatter)
	if wrapped.Color != first.Color {
		t.Errorf("palette did not cycle: trace %d color %q, want %q",
			len(th.Chart.Palette), wrapped.Color, first.Color)
	}
}

func TestRenderChartDefaultsToBar(t *testing.T) {
	th := testTheme(t)
	fig, err := RenderChart(ChartConfig{Data: ChartData{X: []any{"a"}, Y: []float64{1}}}, th, 1.0)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, ok := fig.Traces[0].(*figure.Bar); !ok {
		t.Errorf("empty chart_type rendered %T, want *figure.Bar", fig.Traces[0])
	}
}

func TestRenderChartUnknownType(t *testing.T) {
	th := testTheme(t)
	_, err := RenderChart(ChartConfig{ChartType: "sunburst"}, th, 1.0)
	if !errors.Is(err, ErrUnknownChartType) {
		t.Errorf("err = %v, want ErrUnknownChartType", err)
	}
}

func TestRenderPieAliases(t *testing.T) {
	th := testTheme(t)
	fig, err := RenderChart(ChartConfig{
		ChartType: ChartPie,
		Data:      ChartData{Labels: []any{"x", "y"}, Values: []float64{3, 7}},
	}, th, 1.0)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	pie, ok := fig.Traces[0].(*figure.Pie)
	if !ok {
		t.Fatalf("trace type = %T, want *figure.Pie", fig.Traces[0])
	}
	if len(pie.Labels) != 2 || pie.Labels[0] != "x" {
		t.Errorf("pie labels = %v, want [x y]", pie.Labels)
	}
	if pie.Values[1] != 7 {
		t.Errorf("pie values = %v, want [3 7]", pie.Values)
	}
	if pie.Hole != pieHoleFraction {
		t.Errorf("pie hole = %v, want %v", pie.Hole, pieHoleFraction)
	}
}

func TestKPIDeltaColor(t *testing.T) {
	th := testTheme(t)
	good := true
	bad := false

	tests := []struct {
		name  string
		delta string
		good  *bool
		want  string
	}{
		{"positive delta good", "+8%", &good, th.Colors.Positive},
		{"positive delta bad", "+8%", &bad, th.Colors.Negative},
		{"negative delta good", "-3%", &good, th.Colors.Negative},
		{"negative delta bad", "-3%", &bad, th.Colors.Positive},
		{"bare number is an increase", "8%", &good, th.Colors.Positive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := KPIConfig{Value: json.Number("120"), Delta: tt.delta, DeltaGood: tt.good}
			fig := RenderKPI(cfg, th, 1.0)
			if len(fig.Annotations) != 1 {
				t.Fatalf("annotations = %d, want 1", len(fig.Annotations))
			}
			if got := fig.Annotations[0].Font.Color; got != tt.want {
				t.Errorf("delta color = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKPIDisplayValue(t *testing.T) {
	th := testTheme(t)
	fig := RenderKPI(KPIConfig{Value: json.Number("1234567")}, th, 1.0)
	ind := fig.Traces[0].(*figure.Indicator)
	if ind.Display != "1,234,567" {
		t.Errorf("display = %q, want 1,234,567", ind.Display)
	}

	fig = RenderKPI(KPIConfig{Value: json.Number("0.423"), FormatValue: "%.1f%%"}, th, 1.0)
	ind = fig.Traces[0].(*figure.Indicator)
	if ind.Display != "0.4%" {
		t.Errorf("formatted display = %q, want 0.4%%", ind.Display)
	}
}

func TestKPISparklineLayout(t *testing.T) {
	th := testTheme(t)
	fig := RenderKPI(KPIConfig{
		Value:     json.Number("42"),
		Label:     "Users",
		Sparkline: []float64{1, 2, 3, 2, 4},
	}, th, 1.0)

	if _, ok := fig.Traces[0].(*figure.Scatter); !ok {
		t.Fatalf("trace type = %T, want *figure.Scatter sparkline", fig.Traces[0])
	}
	// Value and label render as stacked annotations over the sparkline.
	if len(fig.Annotations) != 2 {
		t.Errorf("annotations = %d, want 2", len(fig.Annotations))
	}
}

func TestGaugeThresholdColor(t *testing.T) {
	th := testTheme(t)
	cfg := GaugeConfig{
		Value: 72,
		Thresholds: []Threshold{
			{Value: 50, Color: "green"},
			{Value: 80, Color: "yellow"},
			{Value: 100, Color: "red"},
		},
	}
	if got := barColor(cfg, th); got != "yellow" {
		t.Errorf("bar color = %q, want yellow (smallest threshold >= value)", got)
	}

	cfg.Value = 40
	if got := barColor(cfg, th); got != "green" {
		t.Errorf("bar color = %q, want green", got)
	}

	cfg.Value = 110
	if got := barColor(cfg, th); got != th.Colors.Primary {
		t.Errorf("value above all thresholds: color = %q, want theme primary", got)
	}
}

func TestGaugeSteps(t *testing.T) {
	th := testTheme(t)
	cfg := GaugeConfig{
		Min: 10,
		Thresholds: []Threshold{
			{Value: 80, Color: "yellow"},
			{Value: 50, Color: "green"},
		},
	}
	steps := gaugeSteps(cfg, th)
	if len(steps) != 2 {
		t.Fatalf("steps = %d, want 2", len(steps))
	}
	if steps[0].Range != [2]float64{10, 50} || steps[0].Color != "green" {
		t.Errorf("step 0 = %+v, want [10,50] green", steps[0])
	}
	if steps[1].Range != [2]float64{50, 80} || steps[1].Color != "yellow" {
		t.Errorf("step 1 = %+v, want [50,80] yellow", steps[1])
	}
}

func TestGaugeDefaults(t *testing.T) {
	th := testTheme(t)
	fig := RenderGauge(GaugeConfig{Value: 30}, th, 1.0)
	ind := fig.Traces[0].(*figure.Indicator)
	if ind.Gauge.Max != 100 {
		t.Errorf("default max = %v, want 100", ind.Gauge.Max)
	}
	if ind.Gauge.Threshold.Value != 90 {
		t.Errorf("threshold line = %v, want 90", ind.Gauge.Threshold.Value)
	}
}

func TestTableTranspose(t *testing.T) {
	rows := [][]any{
		{"alpha", 1.0, true},
		{"beta", 2.0},
	}
	cols := transpose(rows, 3)

	if len(cols) != 3 {
		t.Fatalf("columns = %d, want 3", len(cols))
	}
	if cols[0][0] != "alpha" || cols[0][1] != "beta" {
		t.Errorf("col 0 = %v", cols[0])
	}
	if cols[1][0] != "1" || cols[1][1] != "2" {
		t.Errorf("col 1 = %v, want numeric labels", cols[1])
	}
	// Ragged row pads with an empty cell.
	if cols[2][1] != "" {
		t.Errorf("ragged cell = %q, want empty", cols[2][1])
	}
}

func TestTableHighlightColumn(t *testing.T) {
	th := testTheme(t)
	h := 1
	fig := RenderTable(TableConfig{
		Headers:         []string{"A", "B"},
		Rows:            [][]any{{"1", "2"}},
		HighlightColumn: &h,
	}, th, 1.0)

	tbl := fig.Traces[0].(*figure.Table)
	if tbl.HeaderFill[0] != th.Colors.Primary {
		t.Errorf("header 0 fill = %q, want primary", tbl.HeaderFill[0])
	}
	if tbl.HeaderFill[1] != th.Colors.Secondary {
		t.Errorf("highlighted header fill = %q, want secondary", tbl.HeaderFill[1])
	}
	if tbl.CellFill[1][0] != th.Colors.Surface {
		t.Errorf("highlighted cell fill = %q, want surface", tbl.CellFill[1][0])
	}
}

func TestRenderUnknownWidgetType(t *testing.T) {
	th := testTheme(t)
	_, err := Render(spec.Widget{Type: "map"}, th, 1.0)
	if !errors.Is(err, ErrUnknownWidgetType) {
		t.Errorf("err = %v, want ErrUnknownWidgetType", err)
	}
}

func TestRenderDispatch(t *testing.T) {
	th := testTheme(t)
	for _, typ := range []string{spec.TypeChart, spec.TypeKPI, spec.TypeTable, spec.TypeGauge} {
		w := spec.Widget{Type: typ, Config: json.RawMessage(`{"value":1,"data":{"x":["a"],"y":[1]}}`)}
		fig, err := Render(w, th, 1.0)
		if err != nil {
			t.Errorf("render %s: %v", typ, err)
			continue
		}
		if fig == nil {
			t.Errorf("render %s: nil figure", typ)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		v      float64
		format string
		want   string
	}{
		{1234567, "", "1,234,567"},
		{-9500, "", "-9,500"},
		{42, "", "42"},
		{0.5, "%.2f", "0.50"},
	}
	for _, tt := range tests {
		if got := formatNumber(tt.v, tt.format); got != tt.want {
			t.Errorf("formatNumber(%v, %q) = %q, want %q", tt.v, tt.format, got, tt.want)
		}
	}
}
