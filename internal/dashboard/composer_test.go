package dashboard

import (
	"errors"
	"strings"
	"testing"

	"github.com/dashkite/dashgen/internal/figure"
	"github.com/dashkite/dashgen/internal/spec"
	"github.com/dashkite/dashgen/internal/theme"
	"github.com/dashkite/dashgen/internal/widget"
)

func testTheme(t *testing.T) theme.Theme {
	t.Helper()
	th, err := theme.Load("corporate")
	if err != nil {
		t.Fatalf("load theme: %v", err)
	}
	return th
}

func parseSpec(t *testing.T, src string) *spec.Dashboard {
	t.Helper()
	d, err := spec.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return d
}

func TestComposeAxisIsolation(t *testing.T) {
	d := parseSpec(t, `{"layout":{"columns":12,"rows":1},"widgets":[
		{"type":"chart","position":{"row":0,"col":0,"colspan":6},
		 "config":{"chart_type":"bar","data":{"x":["a"],"y":[1]}}},
		{"type":"chart","position":{"row":0,"col":6,"colspan":6},
		 "config":{"chart_type":"line","data":{"x":["a"],"y":[2]}}}]}`)

	fig, err := Compose(d, testTheme(t))
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	// Widget 0 keeps the plain pair, widget 1 gets its own.
	for _, id := range []string{"x", "y", "x2", "y2"} {
		if _, ok := fig.Axes[id]; !ok {
			t.Errorf("missing axis %q", id)
		}
	}

	bar := fig.Traces[0].(*figure.Bar)
	line := fig.Traces[1].(*figure.Scatter)
	if bar.XAxis == line.XAxis || bar.YAxis == line.YAxis {
		t.Errorf("widgets share axes: %s/%s and %s/%s", bar.XAxis, bar.YAxis, line.XAxis, line.YAxis)
	}

	// Axis domains are disjoint along x.
	x1 := fig.Axes["x"].Domain
	x2 := fig.Axes["x2"].Domain
	if x1.Max >= x2.Min {
		t.Errorf("x domains intersect: [%v,%v] and [%v,%v]", x1.Min, x1.Max, x2.Min, x2.Max)
	}
}

func TestComposeTwoWidgetDashboard(t *testing.T) {
	d := parseSpec(t, `{"layout":{"columns":12,"rows":1},"widgets":[
		{"type":"kpi","position":{"row":0,"col":0,"colspan":6},"config":{"value":120}},
		{"type":"chart","position":{"row":0,"col":6,"colspan":6},
		 "config":{"chart_type":"bar","data":{"x":["a","b"],"y":[1,2]}}}]}`)

	fig, err := Compose(d, testTheme(t))
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	// The KPI indicator occupies the left region, the bar axes the right.
	var ind *figure.Indicator
	for _, tr := range fig.Traces {
		if i, ok := tr.(*figure.Indicator); ok {
			ind = i
		}
	}
	if ind == nil {
		t.Fatal("no indicator trace in composite")
	}

	barX := fig.Axes["x2"].Domain
	if ind.Domain.X.Max >= barX.Min {
		t.Errorf("regions intersect: kpi ends %v, chart starts %v", ind.Domain.X.Max, barX.Min)
	}
	if ind.Domain.X.Min < 0 || barX.Max > 1 {
		t.Errorf("composite exceeds surface: [%v .. %v]", ind.Domain.X.Min, barX.Max)
	}
}

func TestComposeUnknownWidgetType(t *testing.T) {
	d := parseSpec(t, `{"widgets":[
		{"type":"kpi","position":{"row":0,"col":0},"config":{"value":1}},
		{"type":"treemap","position":{"row":0,"col":1}}]}`)

	_, err := Compose(d, testTheme(t))
	if !errors.Is(err, widget.ErrUnknownWidgetType) {
		t.Fatalf("err = %v, want ErrUnknownWidgetType", err)
	}
	if !strings.Contains(err.Error(), "widget 1") {
		t.Errorf("error should name the failing widget index: %v", err)
	}
}

func TestComposeTitleAndMargins(t *testing.T) {
	th := testTheme(t)

	titled := parseSpec(t, `{"title":"Ops","widgets":[]}`)
	fig, err := Compose(titled, th)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if fig.Layout.Title == nil || fig.Layout.Title.Text != "Ops" {
		t.Fatalf("title = %+v, want Ops", fig.Layout.Title)
	}
	if fig.Layout.Margin.T != 80 {
		t.Errorf("titled top margin = %v, want 80", fig.Layout.Margin.T)
	}
	if fig.Layout.ShowLegend {
		t.Error("composite must render without a legend")
	}

	untitled := parseSpec(t, `{"widgets":[]}`)
	fig, err = Compose(untitled, th)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if fig.Layout.Title != nil {
		t.Errorf("untitled dashboard got title %+v", fig.Layout.Title)
	}
	if fig.Layout.Margin.T != 40 {
		t.Errorf("untitled top margin = %v, want 40", fig.Layout.Margin.T)
	}
}

func TestComposeAnnotationRemap(t *testing.T) {
	// A KPI with a delta emits a local annotation; after composition it must
	// land inside the widget's half of the surface.
	d := parseSpec(t, `{"layout":{"columns":12,"rows":1},"widgets":[
		{"type":"kpi","position":{"row":0,"col":6,"colspan":6},
		 "config":{"value":120,"delta":"+8%"}}]}`)

	fig, err := Compose(d, testTheme(t))
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if len(fig.Annotations) != 1 {
		t.Fatalf("annotations = %d, want 1", len(fig.Annotations))
	}
	a := fig.Annotations[0]
	if a.X <= 0.5 || a.X >= 1 {
		t.Errorf("annotation X = %v, want inside right half", a.X)
	}
	if a.Y <= 0 || a.Y >= 1 {
		t.Errorf("annotation Y = %v, want inside surface", a.Y)
	}
}

func TestComposeChartTitleFloats(t *testing.T) {
	d := parseSpec(t, `{"layout":{"columns":12,"rows":2},"widgets":[
		{"type":"chart","position":{"row":1,"col":0,"colspan":12},
		 "config":{"chart_type":"bar","title":"Trend","data":{"x":["a"],"y":[1]}}}]}`)

	fig, err := Compose(d, testTheme(t))
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	var found bool
	for _, a := range fig.Annotations {
		if a.Text == "Trend" {
			found = true
			yDom := fig.Axes["y"].Domain
			if a.Y <= yDom.Max {
				t.Errorf("chart title Y = %v, want above widget top %v", a.Y, yDom.Max)
			}
		}
	}
	if !found {
		t.Error("chart title not lifted into composite annotations")
	}
}
