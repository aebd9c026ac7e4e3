package export

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/dashkite/dashgen/internal/figure"
)

const (
	defaultFontSize  = 12.0
	defaultTextColor = "#444444"
	gridLineCount    = 5
	arcSegments      = 48
)

// engine walks a figure and emits canvas primitives. All pixel values are
// premultiplied by the output scale so backends never see it.
type engine struct {
	c     Canvas
	fig   *figure.Figure
	w, h  float64
	m     figure.Margin
	scale float64
}

// draw renders fig onto c at the given pixel size. width and height are
// the logical dimensions; scale multiplies everything drawn.
func draw(fig *figure.Figure, c Canvas, width, height int, scale float64) error {
	if scale <= 0 {
		scale = 1
	}
	e := &engine{
		c:     c,
		fig:   fig,
		w:     float64(width) * scale,
		h:     float64(height) * scale,
		scale: scale,
	}
	e.m = figure.Margin{
		L: fig.Layout.Margin.L * scale,
		R: fig.Layout.Margin.R * scale,
		T: fig.Layout.Margin.T * scale,
		B: fig.Layout.Margin.B * scale,
	}

	if bg := fig.Layout.PaperColor; bg != "" {
		e.c.FillRect(0, 0, e.w, e.h, bg)
	}

	e.drawXYGroups()
	e.drawDomainTraces()
	e.drawAnnotations()
	e.drawTitle()

	return e.c.Flush()
}

// paperX maps a paper-fraction x to pixels inside the margins.
func (e *engine) paperX(t float64) float64 {
	return e.m.L + t*(e.w-e.m.L-e.m.R)
}

// paperY maps a paper-fraction y (0 = bottom) to pixels.
func (e *engine) paperY(t float64) float64 {
	return e.h - e.m.B - t*(e.h-e.m.T-e.m.B)
}

func (e *engine) font(f figure.Font) (size float64, color, family string) {
	size = f.Size
	if size <= 0 {
		size = e.fig.Layout.Font.Size
	}
	if size <= 0 {
		size = defaultFontSize
	}
	color = f.Color
	if color == "" {
		color = e.fig.Layout.Font.Color
	}
	if color == "" {
		color = defaultTextColor
	}
	family = f.Family
	if family == "" {
		family = e.fig.Layout.Font.Family
	}
	return size * e.scale, color, family
}

// pixelRect is a plot region in device coordinates. Top < Bottom because
// the canvas origin is the top-left corner.
type pixelRect struct {
	Left, Right, Top, Bottom float64
}

func (r pixelRect) width() float64  { return r.Right - r.Left }
func (r pixelRect) height() float64 { return r.Bottom - r.Top }

func (e *engine) domainRect(x, y figure.Span) pixelRect {
	return pixelRect{
		Left:   e.paperX(x.Min),
		Right:  e.paperX(x.Max),
		Top:    e.paperY(y.Max),
		Bottom: e.paperY(y.Min),
	}
}

// xyGroup is one axis pair and the traces plotted against it.
type xyGroup struct {
	xID, yID string
	traces   []figure.Trace
}

func (e *engine) drawXYGroups() {
	groups := make(map[string]*xyGroup)
	var order []string
	add := func(xID, yID string, t figure.Trace) {
		if xID == "" {
			xID = "x"
		}
		if yID == "" {
			yID = "y"
		}
		key := xID + "|" + yID
		g, ok := groups[key]
		if !ok {
			g = &xyGroup{xID: xID, yID: yID}
			groups[key] = g
			order = append(order, key)
		}
		g.traces = append(g.traces, t)
	}

	for _, t := range e.fig.Traces {
		switch tr := t.(type) {
		case *figure.Bar:
			add(tr.XAxis, tr.YAxis, tr)
		case *figure.Scatter:
			add(tr.XAxis, tr.YAxis, tr)
		case *figure.Heatmap:
			add(tr.XAxis, tr.YAxis, tr)
		}
	}

	for _, key := range order {
		e.drawGroup(groups[key])
	}
}

func (e *engine) drawGroup(g *xyGroup) {
	xAxis := e.fig.Axes[g.xID]
	yAxis := e.fig.Axes[g.yID]
	xDom, yDom := xAxis.Domain, yAxis.Domain
	if xDom == (figure.Span{}) {
		xDom = figure.Span{Min: 0, Max: 1}
	}
	if yDom == (figure.Span{}) {
		yDom = figure.Span{Min: 0, Max: 1}
	}
	rect := e.domainRect(xDom, yDom)
	if rect.width() <= 0 || rect.height() <= 0 {
		return
	}

	if bg := e.fig.Layout.PlotColor; bg != "" {
		e.c.FillRect(rect.Left, rect.Top, rect.width(), rect.height(), bg)
	}

	if hm := firstHeatmap(g.traces); hm != nil {
		e.drawHeatmap(hm, rect, xAxis, yAxis)
		return
	}

	cats := categories(g.traces)
	lo, hi := valueRange(g.traces)
	vy := func(v float64) float64 {
		if hi == lo {
			return rect.Bottom
		}
		return rect.Bottom - (v-lo)/(hi-lo)*rect.height()
	}

	e.drawYGrid(rect, yAxis, lo, hi)
	e.drawXTicks(rect, xAxis, cats)
	e.drawAxisTitles(rect, xAxis, yAxis)

	numBars := 0
	for _, t := range g.traces {
		if _, ok := t.(*figure.Bar); ok {
			numBars++
		}
	}

	barIdx := 0
	var prevLine []Point
	for _, t := range g.traces {
		switch tr := t.(type) {
		case *figure.Bar:
			e.drawBars(tr, rect, cats, vy, barIdx, numBars, yAxis)
			barIdx++
		case *figure.Scatter:
			prevLine = e.drawScatter(tr, rect, cats, vy, prevLine)
		}
	}

	if e.fig.Layout.ShowLegend {
		e.drawLegend(rect, g.traces)
	}
}

// drawLegend stacks swatch+name entries in the top-right corner of the
// plot area, one per named series in the group.
func (e *engine) drawLegend(rect pixelRect, traces []figure.Trace) {
	type entry struct{ name, color string }
	var entries []entry
	for _, t := range traces {
		switch tr := t.(type) {
		case *figure.Bar:
			if tr.Name != "" {
				entries = append(entries, entry{tr.Name, tr.Color})
			}
		case *figure.Scatter:
			if tr.Name != "" {
				entries = append(entries, entry{tr.Name, tr.Color})
			}
		}
	}
	if len(entries) == 0 {
		return
	}

	size, color, family := e.font(figure.Font{})
	swatch := size * 0.8
	right := rect.Right - 8*e.scale
	y := rect.Top + 8*e.scale
	for _, en := range entries {
		e.c.FillRect(right-swatch, y, swatch, swatch, en.color)
		e.c.Text(en.name, right-swatch-6*e.scale, y+swatch/2+size/3, size, color, family, AnchorEnd)
		y += size * 1.5
	}
}

// categories collects the x category labels across the group, preserving
// first-seen order. Traces without explicit X contribute index positions.
func categories(traces []figure.Trace) []string {
	var out []string
	seen := make(map[string]bool)
	maxLen := 0
	for _, t := range traces {
		var xs []string
		switch tr := t.(type) {
		case *figure.Bar:
			xs = tr.X
			if len(tr.Y) > maxLen {
				maxLen = len(tr.Y)
			}
		case *figure.Scatter:
			xs = tr.X
			if len(tr.Y) > maxLen {
				maxLen = len(tr.Y)
			}
		}
		for _, x := range xs {
			if !seen[x] {
				seen[x] = true
				out = append(out, x)
			}
		}
	}
	for len(out) < maxLen {
		out = append(out, strconv.Itoa(len(out)))
	}
	return out
}

// valueRange finds the y extent across the group, pinning zero into the
// range for bars and filled areas and padding the top by 8%.
func valueRange(traces []figure.Trace) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	pinZero := false
	scan := func(ys []float64) {
		for _, v := range ys {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	for _, t := range traces {
		switch tr := t.(type) {
		case *figure.Bar:
			scan(tr.Y)
			pinZero = true
		case *figure.Scatter:
			scan(tr.Y)
			if tr.Fill != figure.FillNone {
				pinZero = true
			}
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	if pinZero {
		if lo > 0 {
			lo = 0
		}
		if hi < 0 {
			hi = 0
		}
	}
	if hi == lo {
		hi = lo + 1
	}
	pad := (hi - lo) * 0.08
	return lo, hi + pad
}

func (e *engine) drawYGrid(rect pixelRect, ax figure.Axis, lo, hi float64) {
	size, color, family := e.font(ax.TickFont)
	for i := 0; i <= gridLineCount; i++ {
		t := float64(i) / gridLineCount
		y := rect.Bottom - t*rect.height()
		if ax.ShowGrid && ax.GridColor != "" && i > 0 {
			e.c.Line(rect.Left, y, rect.Right, y, e.scale, ax.GridColor)
		}
		if ax.ShowTicks {
			label := formatTick(lo + t*(hi-lo))
			e.c.Text(label, rect.Left-6*e.scale, y+size/3, size, color, family, AnchorEnd)
		}
	}
	if ax.LineColor != "" {
		e.c.Line(rect.Left, rect.Bottom, rect.Right, rect.Bottom, e.scale, ax.LineColor)
	}
}

func (e *engine) drawXTicks(rect pixelRect, ax figure.Axis, cats []string) {
	if len(cats) == 0 {
		return
	}
	if ax.ShowTicks {
		size, color, family := e.font(ax.TickFont)
		// Thin out labels when slots get narrower than a rough label width.
		step := 1
		if slot := rect.width() / float64(len(cats)); slot > 0 {
			if need := int(math.Ceil(size * 4 / slot)); need > 1 {
				step = need
			}
		}
		for i := 0; i < len(cats); i += step {
			x := rect.Left + (float64(i)+0.5)/float64(len(cats))*rect.width()
			e.c.Text(cats[i], x, rect.Bottom+size+4*e.scale, size, color, family, AnchorMiddle)
		}
	}
	if ax.LineColor != "" {
		e.c.Line(rect.Left, rect.Top, rect.Left, rect.Bottom, e.scale, ax.LineColor)
	}
}

func (e *engine) drawAxisTitles(rect pixelRect, xAxis, yAxis figure.Axis) {
	if xAxis.Title != "" {
		size, color, family := e.font(xAxis.TitleFont)
		tickSize, _, _ := e.font(xAxis.TickFont)
		y := rect.Bottom + tickSize + size + 10*e.scale
		e.c.Text(xAxis.Title, rect.Left+rect.width()/2, y, size, color, family, AnchorMiddle)
	}
	if yAxis.Title != "" {
		size, color, family := e.font(yAxis.TitleFont)
		e.c.Text(yAxis.Title, rect.Left, rect.Top-8*e.scale, size, color, family, AnchorStart)
	}
}

func (e *engine) drawBars(tr *figure.Bar, rect pixelRect, cats []string, vy func(float64) float64, idx, numSeries int, yAxis figure.Axis) {
	if len(cats) == 0 || numSeries == 0 {
		return
	}
	slot := rect.width() / float64(len(cats))
	group := slot * 0.8
	barW := group / float64(numSeries)
	baseline := vy(0)

	pos := make(map[string]int, len(cats))
	for i, c := range cats {
		pos[c] = i
	}

	for i, v := range tr.Y {
		ci := i
		if i < len(tr.X) {
			if p, ok := pos[tr.X[i]]; ok {
				ci = p
			}
		}
		if ci >= len(cats) {
			continue
		}
		x := rect.Left + float64(ci)*slot + (slot-group)/2 + float64(idx)*barW
		top := vy(v)
		y0, y1 := top, baseline
		if y0 > y1 {
			y0, y1 = y1, y0
		}
		e.c.FillRect(x, y0, barW*0.92, y1-y0, tr.Color)

		if tr.ShowValues {
			size, color, family := e.font(yAxis.TickFont)
			e.c.Text(formatTick(v), x+barW*0.46, y0-4*e.scale, size, color, family, AnchorMiddle)
		}
	}
}

func (e *engine) drawScatter(tr *figure.Scatter, rect pixelRect, cats []string, vy func(float64) float64, prev []Point) []Point {
	n := len(tr.Y)
	if n == 0 {
		return prev
	}
	pos := make(map[string]int, len(cats))
	for i, c := range cats {
		pos[c] = i
	}
	xAt := func(i int) float64 {
		ci := i
		if i < len(tr.X) {
			if p, ok := pos[tr.X[i]]; ok {
				ci = p
			}
		}
		if len(cats) > 0 {
			return rect.Left + (float64(ci)+0.5)/float64(len(cats))*rect.width()
		}
		if n == 1 {
			return rect.Left + rect.width()/2
		}
		return rect.Left + float64(i)/float64(n-1)*rect.width()
	}

	pts := make([]Point, n)
	for i, v := range tr.Y {
		pts[i] = Point{X: xAt(i), Y: vy(v)}
	}

	switch tr.Fill {
	case figure.FillToZeroY:
		poly := make([]Point, 0, n+2)
		poly = append(poly, pts...)
		base := vy(0)
		poly = append(poly, Point{X: pts[n-1].X, Y: base}, Point{X: pts[0].X, Y: base})
		e.c.Polygon(poly, fillColorOf(tr))
	case figure.FillToNextY:
		if len(prev) > 0 {
			poly := make([]Point, 0, n+len(prev))
			poly = append(poly, pts...)
			for i := len(prev) - 1; i >= 0; i-- {
				poly = append(poly, prev[i])
			}
			e.c.Polygon(poly, fillColorOf(tr))
		}
	}

	width := tr.Width
	if width <= 0 {
		width = 2
	}
	if tr.Mode == figure.ModeLines || tr.Mode == figure.ModeLinesMarkers || tr.Mode == "" {
		e.c.PolyLine(pts, width*e.scale, tr.Color)
	}
	if tr.Mode == figure.ModeMarkers || tr.Mode == figure.ModeLinesMarkers {
		r := tr.MarkerSize
		if r <= 0 {
			r = 6
		}
		for _, p := range pts {
			e.c.Circle(p.X, p.Y, r/2*e.scale, tr.Color)
		}
	}
	return pts
}

func fillColorOf(tr *figure.Scatter) string {
	if tr.FillColor != "" {
		return tr.FillColor
	}
	return tr.Color
}

func firstHeatmap(traces []figure.Trace) *figure.Heatmap {
	for _, t := range traces {
		if hm, ok := t.(*figure.Heatmap); ok {
			return hm
		}
	}
	return nil
}

func (e *engine) drawHeatmap(hm *figure.Heatmap, rect pixelRect, xAxis, yAxis figure.Axis) {
	rows := len(hm.Z)
	if rows == 0 {
		return
	}
	cols := 0
	for _, row := range hm.Z {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range hm.Z {
		for _, v := range row {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	cw := rect.width() / float64(cols)
	ch := rect.height() / float64(rows)
	for r, row := range hm.Z {
		// Row 0 sits at the bottom, matching the y-up data convention.
		y := rect.Bottom - float64(r+1)*ch
		for cIdx, v := range row {
			t := (v - lo) / span
			e.c.FillRect(rect.Left+float64(cIdx)*cw, y, cw, ch, lerpColor(hm.MinColor, hm.MaxColor, t))
		}
	}

	size, color, family := e.font(xAxis.TickFont)
	for i, label := range hm.X {
		if i >= cols {
			break
		}
		x := rect.Left + (float64(i)+0.5)*cw
		e.c.Text(label, x, rect.Bottom+size+4*e.scale, size, color, family, AnchorMiddle)
	}
	size, color, family = e.font(yAxis.TickFont)
	for i, label := range hm.Y {
		if i >= rows {
			break
		}
		y := rect.Bottom - (float64(i)+0.5)*ch
		e.c.Text(label, rect.Left-6*e.scale, y+size/3, size, color, family, AnchorEnd)
	}
}

func (e *engine) drawDomainTraces() {
	for _, t := range e.fig.Traces {
		switch tr := t.(type) {
		case *figure.Pie:
			e.drawPie(tr)
		case *figure.Table:
			e.drawTable(tr)
		case *figure.Indicator:
			e.drawIndicator(tr)
		}
	}
}

func (e *engine) drawPie(tr *figure.Pie) {
	rect := e.domainRect(tr.Domain.X, tr.Domain.Y)
	if rect.width() <= 0 || rect.height() <= 0 {
		return
	}
	total := 0.0
	for _, v := range tr.Values {
		total += v
	}
	if total <= 0 {
		return
	}

	cx := rect.Left + rect.width()/2
	cy := rect.Top + rect.height()/2
	r := math.Min(rect.width(), rect.height()) / 2 * 0.82
	inner := r * tr.Hole
	size, color, family := e.font(tr.TextFont)

	angle := -90.0 // start at 12 o'clock, sweep clockwise
	for i, v := range tr.Values {
		sweep := v / total * 360
		fill := ""
		if len(tr.Colors) > 0 {
			fill = tr.Colors[i%len(tr.Colors)]
		}
		e.c.Polygon(wedge(cx, cy, inner, r, angle, angle+sweep), fill)

		mid := (angle + angle + sweep) / 2 * math.Pi / 180
		labelR := (inner + r) / 2
		if inner == 0 {
			labelR = r * 0.62
		}
		pct := fmt.Sprintf("%.0f%%", v/total*100)
		tx := cx + labelR*math.Cos(mid)
		ty := cy + labelR*math.Sin(mid)
		e.c.Text(pct, tx, ty+size/3, size, color, family, AnchorMiddle)

		if tr.ShowLabels && i < len(tr.Labels) {
			ox := cx + r*1.12*math.Cos(mid)
			oy := cy + r*1.12*math.Sin(mid)
			anchor := AnchorStart
			if math.Cos(mid) < -0.1 {
				anchor = AnchorEnd
			} else if math.Abs(math.Cos(mid)) <= 0.1 {
				anchor = AnchorMiddle
			}
			e.c.Text(tr.Labels[i], ox, oy+size/3, size, color, family, anchor)
		}
		angle += sweep
	}
}

// wedge samples an annular sector as a closed polygon. With innerR zero
// the inner arc collapses to the center point.
func wedge(cx, cy, innerR, outerR, a0, a1 float64) []Point {
	steps := int(math.Max(2, math.Abs(a1-a0)/360*arcSegments))
	pts := make([]Point, 0, 2*steps+2)
	for i := 0; i <= steps; i++ {
		a := (a0 + (a1-a0)*float64(i)/float64(steps)) * math.Pi / 180
		pts = append(pts, Point{X: cx + outerR*math.Cos(a), Y: cy + outerR*math.Sin(a)})
	}
	if innerR <= 0 {
		pts = append(pts, Point{X: cx, Y: cy})
		return pts
	}
	for i := steps; i >= 0; i-- {
		a := (a0 + (a1-a0)*float64(i)/float64(steps)) * math.Pi / 180
		pts = append(pts, Point{X: cx + innerR*math.Cos(a), Y: cy + innerR*math.Sin(a)})
	}
	return pts
}

func (e *engine) drawTable(tr *figure.Table) {
	rect := e.domainRect(tr.Domain.X, tr.Domain.Y)
	numCols := len(tr.Headers)
	if numCols == 0 || rect.width() <= 0 || rect.height() <= 0 {
		return
	}

	widths := make([]float64, numCols)
	totalW := 0.0
	for i := range widths {
		w := 1.0
		if i < len(tr.ColumnWidths) && tr.ColumnWidths[i] > 0 {
			w = tr.ColumnWidths[i]
		}
		widths[i] = w
		totalW += w
	}
	for i := range widths {
		widths[i] = widths[i] / totalW * rect.width()
	}

	headerH := tr.HeaderHeight * e.scale
	cellH := tr.CellHeight * e.scale
	hSize, hColor, hFamily := e.font(tr.HeaderFont)
	cSize, cColor, cFamily := e.font(tr.CellFont)

	x := rect.Left
	for ci := 0; ci < numCols; ci++ {
		if len(tr.HeaderFill) > 0 {
			e.c.FillRect(x, rect.Top, widths[ci], headerH, tr.HeaderFill[ci%len(tr.HeaderFill)])
		}
		e.c.Text(tr.Headers[ci], x+widths[ci]/2, rect.Top+headerH/2+hSize/3, hSize, hColor, hFamily, AnchorMiddle)
		x += widths[ci]
	}

	numRows := 0
	for _, col := range tr.Columns {
		if len(col) > numRows {
			numRows = len(col)
		}
	}
	for ri := 0; ri < numRows; ri++ {
		y := rect.Top + headerH + float64(ri)*cellH
		if y+cellH > rect.Bottom {
			break // clip rows that overflow the widget region
		}
		x = rect.Left
		for ci := 0; ci < numCols; ci++ {
			if ci < len(tr.CellFill) && len(tr.CellFill[ci]) > 0 {
				fill := tr.CellFill[ci][ri%len(tr.CellFill[ci])]
				e.c.FillRect(x, y, widths[ci], cellH, fill)
			}
			if ci < len(tr.Columns) && ri < len(tr.Columns[ci]) {
				e.c.Text(tr.Columns[ci][ri], x+widths[ci]/2, y+cellH/2+cSize/3, cSize, cColor, cFamily, AnchorMiddle)
			}
			x += widths[ci]
		}
	}
}

func (e *engine) drawIndicator(tr *figure.Indicator) {
	rect := e.domainRect(tr.Domain.X, tr.Domain.Y)
	if rect.width() <= 0 || rect.height() <= 0 {
		return
	}
	cx := rect.Left + rect.width()/2

	if tr.Title != "" {
		size, color, family := e.font(tr.TitleFont)
		e.c.Text(tr.Title, cx, rect.Top+size*1.2, size, color, family, AnchorMiddle)
	}

	display := tr.Display + tr.Suffix
	numSize, numColor, numFamily := e.font(tr.NumberFont)

	if tr.Mode != figure.IndicatorGauge || tr.Gauge == nil {
		e.c.Text(display, cx, rect.Top+rect.height()/2+numSize/3, numSize, numColor, numFamily, AnchorMiddle)
		return
	}

	g := tr.Gauge
	dialCY := rect.Top + rect.height()*0.78
	r := math.Min(rect.width()/2, rect.height()*0.55) * 0.92
	bandInner := r * 0.68

	angleOf := func(v float64) float64 {
		span := g.Max - g.Min
		if span == 0 {
			span = 1
		}
		t := (v - g.Min) / span
		t = math.Max(0, math.Min(1, t))
		return -180 + t*180 // -180 is the left end of the dial
	}

	if g.Background != "" {
		e.c.Polygon(wedge(cx, dialCY, bandInner, r, -180, 0), g.Background)
	}
	steps := append([]figure.GaugeStep(nil), g.Steps...)
	sort.Slice(steps, func(i, j int) bool { return steps[i].Range[0] < steps[j].Range[0] })
	for _, s := range steps {
		e.c.Polygon(wedge(cx, dialCY, bandInner, r, angleOf(s.Range[0]), angleOf(s.Range[1])), s.Color)
	}

	// Value bar rides inside the step band.
	e.c.Polygon(wedge(cx, dialCY, r*0.34, r*0.62, -180, angleOf(tr.Value)), g.BarColor)

	if g.BorderColor != "" && g.BorderWidth > 0 {
		arc := wedge(cx, dialCY, 0, r, -180, 0)
		e.c.PolyLine(arc[:len(arc)-1], g.BorderWidth*e.scale, g.BorderColor)
	}

	if th := g.Threshold; th != nil {
		a := angleOf(th.Value) * math.Pi / 180
		e.c.Line(
			cx+bandInner*math.Cos(a), dialCY+bandInner*math.Sin(a),
			cx+r*math.Cos(a), dialCY+r*math.Sin(a),
			th.Width*e.scale, th.Color,
		)
	}

	tickSize, tickColor, tickFamily := e.font(g.TickFont)
	tickY := dialCY + tickSize + 4*e.scale
	e.c.Text(formatTick(g.Min), cx-(r+bandInner)/2, tickY, tickSize, tickColor, tickFamily, AnchorMiddle)
	e.c.Text(formatTick(g.Max), cx+(r+bandInner)/2, tickY, tickSize, tickColor, tickFamily, AnchorMiddle)

	e.c.Text(display, cx, dialCY-6*e.scale, numSize, numColor, numFamily, AnchorMiddle)
}

func (e *engine) drawAnnotations() {
	for _, a := range e.fig.Annotations {
		size, color, family := e.font(a.Font)
		e.c.Text(a.Text, e.paperX(a.X), e.paperY(a.Y)+size/3, size, color, family, AnchorMiddle)
	}
}

func (e *engine) drawTitle() {
	t := e.fig.Layout.Title
	if t == nil || t.Text == "" {
		return
	}
	size, color, family := e.font(t.Font)
	x := t.X
	if x == 0 {
		x = 0.5
	}
	y := e.m.T * 0.65
	if y < size {
		y = size
	}
	e.c.Text(t.Text, x*e.w, y, size, color, family, AnchorMiddle)
}

// formatTick renders an axis value compactly: integers without decimals,
// everything else with up to two.
func formatTick(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	return s
}
