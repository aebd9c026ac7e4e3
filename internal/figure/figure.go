// Package figure defines the in-memory scene model for rendered dashboards.
// A Figure collects traces (bars, lines, pies, tables, indicators), the axes
// they reference, and free-floating text annotations. Widget renderers build
// figures in a local [0,1]x[0,1] coordinate space; the dashboard composer
// remaps them onto the shared plotting surface; the export engine walks the
// final figure and draws it.
package figure

// Span is a [min,max] fractional interval along one axis of the plotting
// surface. All spans are expressed in normalized [0,1] coordinates with
// y=0 at the bottom.
type Span struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Size returns the extent of the span. Negative sizes are possible for
// out-of-bounds grid placements and are deliberately not clamped here.
func (s Span) Size() float64 {
	return s.Max - s.Min
}

// Lerp maps a local fraction t in [0,1] to the absolute coordinate within
// the span.
func (s Span) Lerp(t float64) float64 {
	return s.Min + t*(s.Max-s.Min)
}

// Rect is the rectangular region a trace occupies on the plotting surface.
type Rect struct {
	X Span `json:"x"`
	Y Span `json:"y"`
}

// FullRect covers the entire plotting surface. Widget renderers use it as
// the local domain before composition remaps it.
func FullRect() Rect {
	return Rect{X: Span{0, 1}, Y: Span{0, 1}}
}

// Font describes text styling for one element.
type Font struct {
	Size   float64 `json:"size"`
	Color  string  `json:"color,omitempty"`
	Family string  `json:"family,omitempty"`
}

// Axis is one coordinate axis of an xy trace. Axes come in anchored pairs
// ("x"/"y", "x2"/"y2", ...); Domain positions the axis on the surface and
// Anchor names the paired counterpart. Ticks and grid are opt-in: traces
// plotted against an unregistered axis (sparklines) get neither.
type Axis struct {
	Domain    Span   `json:"domain"`
	Anchor    string `json:"anchor"`
	GridColor string `json:"grid_color,omitempty"`
	LineColor string `json:"line_color,omitempty"`
	ShowGrid  bool   `json:"show_grid"`
	ShowTicks bool   `json:"show_ticks"`
	TickFont  Font   `json:"tick_font"`
	Title     string `json:"title,omitempty"`
	TitleFont Font   `json:"title_font"`
}

// Annotation is free text positioned in paper coordinates ([0,1] across the
// plotting surface).
type Annotation struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Font Font    `json:"font"`
}

// Margin is the pixel inset of the plotting surface from the image edge.
type Margin struct {
	L, R, T, B float64
}

// Title is the figure-level title block.
type Title struct {
	Text string
	Font Font
	// X is the horizontal anchor position in paper coordinates (0.5 = centered).
	X float64
}

// Layout holds figure-global styling applied once after all traces merge.
type Layout struct {
	Title      *Title
	PaperColor string
	PlotColor  string
	Font       Font
	Margin     Margin
	ShowLegend bool
}

// Figure is a complete drawable scene.
type Figure struct {
	Traces      []Trace
	Axes        map[string]Axis
	Annotations []Annotation
	Layout      Layout
}

// New returns an empty figure with an initialized axis map.
func New() *Figure {
	return &Figure{Axes: make(map[string]Axis)}
}

// AddTrace appends a trace to the figure.
func (f *Figure) AddTrace(t Trace) {
	f.Traces = append(f.Traces, t)
}

// AddAnnotation appends a paper-coordinate annotation.
func (f *Figure) AddAnnotation(a Annotation) {
	f.Annotations = append(f.Annotations, a)
}

// SetAxis registers or replaces an axis by id ("x", "y", "x2", ...).
func (f *Figure) SetAxis(id string, ax Axis) {
	if f.Axes == nil {
		f.Axes = make(map[string]Axis)
	}
	f.Axes[id] = ax
}
