package figure

// Trace is one drawable element of a figure. Traces are a closed set: the
// export engine type-switches over the concrete types below, and the
// composer uses the Kind to decide between domain remapping (elements that
// own a rectangular region) and axis-pair assignment (xy-plotted elements).
type Trace interface {
	Kind() string
}

// ScatterMode selects how scatter points are drawn.
type ScatterMode string

const (
	ModeLines        ScatterMode = "lines"
	ModeMarkers      ScatterMode = "markers"
	ModeLinesMarkers ScatterMode = "lines+markers"
)

// FillMode selects area filling for scatter traces.
type FillMode string

const (
	FillNone    FillMode = ""
	FillToZeroY FillMode = "tozeroy"
	FillToNextY FillMode = "tonexty"
)

// Bar is a vertical bar series plotted against an axis pair.
type Bar struct {
	Name       string
	X          []string
	Y          []float64
	Color      string
	ShowValues bool
	XAxis      string
	YAxis      string
}

func (*Bar) Kind() string { return "bar" }

// Scatter is a line/marker/area series plotted against an axis pair.
// When X is empty, point indices are used as x positions (sparklines).
type Scatter struct {
	Name       string
	X          []string
	Y          []float64
	Mode       ScatterMode
	Fill       FillMode
	FillColor  string
	Color      string
	Width      float64
	MarkerSize float64
	XAxis      string
	YAxis      string
}

func (*Scatter) Kind() string { return "scatter" }

// Heatmap is a z-matrix plotted against an axis pair, colored by linear
// interpolation between MinColor and MaxColor.
type Heatmap struct {
	Z        [][]float64
	X        []string
	Y        []string
	MinColor string
	MaxColor string
	XAxis    string
	YAxis    string
}

func (*Heatmap) Kind() string { return "heatmap" }

// Pie is a donut/pie chart that owns its Domain region directly.
type Pie struct {
	Labels     []string
	Values     []float64
	Colors     []string
	Hole       float64
	ShowLabels bool
	TextFont   Font
	Domain     Rect
}

func (*Pie) Kind() string { return "pie" }

// Table is a styled data table that owns its Domain region. Cells are
// column-major: Columns[c][r] is the value at row r of column c, matching
// the renderer's drawing order.
type Table struct {
	Headers      []string
	Columns      [][]string
	ColumnWidths []float64
	HeaderFill   []string
	CellFill     [][]string
	HeaderFont   Font
	CellFont     Font
	HeaderHeight float64
	CellHeight   float64
	Domain       Rect
}

func (*Table) Kind() string { return "table" }

// IndicatorMode selects the indicator presentation.
type IndicatorMode string

const (
	IndicatorNumber IndicatorMode = "number"
	IndicatorGauge  IndicatorMode = "gauge+number"
)

// GaugeStep is one colored background band of a gauge dial.
type GaugeStep struct {
	Range [2]float64
	Color string
}

// GaugeThreshold is the marker line drawn across the gauge dial.
type GaugeThreshold struct {
	Value float64
	Color string
	Width float64
}

// Gauge configures the dial portion of a gauge indicator.
type Gauge struct {
	Min         float64
	Max         float64
	BarColor    string
	Background  string
	BorderColor string
	BorderWidth float64
	Steps       []GaugeStep
	Threshold   *GaugeThreshold
	TickFont    Font
}

// Indicator is a KPI number or gauge that owns its Domain region.
type Indicator struct {
	Mode       IndicatorMode
	Value      float64
	Display    string
	Suffix     string
	NumberFont Font
	Title      string
	TitleFont  Font
	Gauge      *Gauge
	Domain     Rect
}

func (*Indicator) Kind() string { return "indicator" }
