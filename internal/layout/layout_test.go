package layout

import (
	"testing"
)

func TestComputeDomainWithinSurface(t *testing.T) {
	g := Grid{Columns: 12, Rows: 2, HSpacing: 0.02, VSpacing: 0.04, TitleMargin: 0.08}

	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Columns; col++ {
			x, y := ComputeDomain(Cell{Row: row, Col: col, RowSpan: 1, ColSpan: 1}, g)

			if x.Min < 0 || x.Max > 1 {
				t.Errorf("cell (%d,%d): x domain [%v,%v] outside [0,1]", row, col, x.Min, x.Max)
			}
			if y.Min < 0 || y.Max > 1 {
				t.Errorf("cell (%d,%d): y domain [%v,%v] outside [0,1]", row, col, y.Min, y.Max)
			}
			if x.Max <= x.Min {
				t.Errorf("cell (%d,%d): non-positive width [%v,%v]", row, col, x.Min, x.Max)
			}
			if y.Max <= y.Min {
				t.Errorf("cell (%d,%d): non-positive height [%v,%v]", row, col, y.Min, y.Max)
			}
		}
	}
}

func TestComputeDomainNonOverlap(t *testing.T) {
	g := Grid{Columns: 12, Rows: 2, HSpacing: 0.02, VSpacing: 0.04, TitleMargin: 0.08}

	// Two widgets in the same row with adjacent column ranges.
	xa, _ := ComputeDomain(Cell{Row: 0, Col: 0, RowSpan: 1, ColSpan: 6}, g)
	xb, _ := ComputeDomain(Cell{Row: 0, Col: 6, RowSpan: 1, ColSpan: 6}, g)

	if xa.Max >= xb.Min {
		t.Errorf("x domains intersect: [%v,%v] and [%v,%v]", xa.Min, xa.Max, xb.Min, xb.Max)
	}
}

func TestComputeDomainNegativeTitleMargin(t *testing.T) {
	base := Grid{Columns: 12, Rows: 2, HSpacing: 0.02, VSpacing: 0.04, TitleMargin: 0}
	raised := base
	raised.TitleMargin = -0.05

	cell := Cell{Row: 1, Col: 3, RowSpan: 1, ColSpan: 2}
	_, y0 := ComputeDomain(cell, base)
	_, y1 := ComputeDomain(cell, raised)

	// Negative margin pushes every domain upward.
	if y1.Max <= y0.Max {
		t.Errorf("top did not rise: %v -> %v", y0.Max, y1.Max)
	}
	if y1.Min <= y0.Min {
		t.Errorf("bottom did not rise: %v -> %v", y0.Min, y1.Min)
	}
}

func TestComputeDomainSpanCoversCells(t *testing.T) {
	g := Grid{Columns: 4, Rows: 2, HSpacing: 0.02, VSpacing: 0.04}

	// A 2-colspan widget ends where the cell after it begins, minus spacing.
	wide, _ := ComputeDomain(Cell{Row: 0, Col: 0, RowSpan: 1, ColSpan: 2}, g)
	next, _ := ComputeDomain(Cell{Row: 0, Col: 2, RowSpan: 1, ColSpan: 1}, g)

	if diff := next.Min - wide.Max; diff < 0 || diff > g.HSpacing+1e-9 {
		t.Errorf("gap between spanned widget and neighbor = %v, want ~%v", diff, g.HSpacing)
	}
}

func TestResolvePresetOverride(t *testing.T) {
	h := 0.05
	s := Resolve(Overrides{Preset: "compact", HSpacing: &h})

	if s.HSpacing != 0.05 {
		t.Errorf("HSpacing = %v, want 0.05 (explicit override wins)", s.HSpacing)
	}
	if s.WidgetPadding != 10 {
		t.Errorf("WidgetPadding = %d, want 10 (compact preset)", s.WidgetPadding)
	}
	if s.FontScale != 0.85 {
		t.Errorf("FontScale = %v, want 0.85 (compact preset)", s.FontScale)
	}
}

func TestResolveUnknownPresetFallsBack(t *testing.T) {
	s := Resolve(Overrides{Preset: "nope"})
	want := Resolve(Overrides{Preset: "default"})
	if s != want {
		t.Errorf("unknown preset resolved to %+v, want default %+v", s, want)
	}
}

func TestResolveAllPresets(t *testing.T) {
	for _, name := range PresetNames() {
		s := Resolve(Overrides{Preset: name})
		if s.FontScale <= 0 || s.WidgetPadding <= 0 || s.TitleSize <= 0 {
			t.Errorf("preset %q resolved with zero fields: %+v", name, s)
		}
	}
}
