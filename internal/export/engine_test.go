package export

import (
	"testing"

	"github.com/dashkite/dashgen/internal/figure"
)

// recordingCanvas captures text and fill calls so tests can assert what
// the engine emits without decoding image bytes.
type recordingCanvas struct {
	texts []string
	fills []string
}

func (c *recordingCanvas) FillRect(x, y, w, h float64, color string) {
	c.fills = append(c.fills, color)
}
func (c *recordingCanvas) StrokeRect(x, y, w, h, width float64, color string) {}
func (c *recordingCanvas) Line(x1, y1, x2, y2, width float64, color string)   {}
func (c *recordingCanvas) Polygon(pts []Point, fill string)                   {}
func (c *recordingCanvas) PolyLine(pts []Point, width float64, color string)  {}
func (c *recordingCanvas) Circle(cx, cy, r float64, fill string)              {}
func (c *recordingCanvas) Text(s string, x, y, size float64, color, family string, anchor Anchor) {
	c.texts = append(c.texts, s)
}
func (c *recordingCanvas) Flush() error { return nil }

func (c *recordingCanvas) hasText(s string) bool {
	for _, t := range c.texts {
		if t == s {
			return true
		}
	}
	return false
}

func TestDrawSparklineEmitsNoTickLabels(t *testing.T) {
	// Sparkline-style scatter: no registered axes, value and label drawn
	// as annotations. Only the annotations may produce text.
	fig := figure.New()
	fig.AddTrace(&figure.Scatter{
		Y:    []float64{1, 2, 3, 4, 5},
		Mode: figure.ModeLines,
		Fill: figure.FillToZeroY,
	})
	fig.AddAnnotation(figure.Annotation{Text: "4.3k", X: 0.5, Y: 0.7})
	fig.AddAnnotation(figure.Annotation{Text: "Active Users", X: 0.5, Y: 0.35})
	fig.Layout.Margin = figure.Margin{L: 20, R: 20, T: 20, B: 20}

	c := &recordingCanvas{}
	if err := draw(fig, c, 320, 180, 1); err != nil {
		t.Fatalf("draw: %v", err)
	}

	want := map[string]bool{"4.3k": true, "Active Users": true}
	for _, s := range c.texts {
		if !want[s] {
			t.Errorf("unexpected text %q drawn", s)
		}
	}
	if len(c.texts) != 2 {
		t.Errorf("drew %d text elements, want 2", len(c.texts))
	}
}

func TestDrawAxisTicksOptIn(t *testing.T) {
	fig := figure.New()
	fig.Layout.Margin = figure.Margin{L: 60, R: 40, T: 40, B: 60}
	fig.AddTrace(&figure.Bar{X: []string{"a", "b", "c"}, Y: []float64{1, 3, 2}, Color: "#4a90d9"})
	fig.SetAxis("x", figure.Axis{Domain: figure.Span{Min: 0, Max: 1}, Anchor: "y", ShowTicks: true})
	fig.SetAxis("y", figure.Axis{Domain: figure.Span{Min: 0, Max: 1}, Anchor: "x", ShowTicks: true})

	c := &recordingCanvas{}
	if err := draw(fig, c, 640, 360, 1); err != nil {
		t.Fatalf("draw: %v", err)
	}
	for _, label := range []string{"a", "b", "c", "0"} {
		if !c.hasText(label) {
			t.Errorf("tick label %q not drawn", label)
		}
	}
}

func TestDrawLegendForNamedSeries(t *testing.T) {
	build := func(showLegend bool) *figure.Figure {
		fig := figure.New()
		fig.Layout.ShowLegend = showLegend
		fig.Layout.Margin = figure.Margin{L: 60, R: 40, T: 40, B: 60}
		fig.AddTrace(&figure.Bar{Name: "2023", X: []string{"a", "b"}, Y: []float64{1, 2}, Color: "#111111"})
		fig.AddTrace(&figure.Bar{Name: "2024", X: []string{"a", "b"}, Y: []float64{2, 3}, Color: "#222222"})
		return fig
	}

	c := &recordingCanvas{}
	if err := draw(build(true), c, 640, 360, 1); err != nil {
		t.Fatalf("draw: %v", err)
	}
	for _, name := range []string{"2023", "2024"} {
		if !c.hasText(name) {
			t.Errorf("legend entry %q not drawn", name)
		}
	}
	swatches := 0
	for _, fill := range c.fills {
		if fill == "#111111" || fill == "#222222" {
			swatches++
		}
	}
	// Two bars per series plus one legend swatch each.
	if swatches != 6 {
		t.Errorf("series-colored fills = %d, want 6", swatches)
	}

	c = &recordingCanvas{}
	if err := draw(build(false), c, 640, 360, 1); err != nil {
		t.Fatalf("draw: %v", err)
	}
	for _, name := range []string{"2023", "2024"} {
		if c.hasText(name) {
			t.Errorf("legend entry %q drawn with legend disabled", name)
		}
	}
}
