package spec

import (
	"errors"
	"strings"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	d, err := Parse([]byte(`{"widgets":[{"type":"kpi","position":{"row":0,"col":0}}]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if d.Layout.Columns != DefaultColumns {
		t.Errorf("columns = %d, want %d", d.Layout.Columns, DefaultColumns)
	}
	if d.Layout.Rows != DefaultRows {
		t.Errorf("rows = %d, want %d", d.Layout.Rows, DefaultRows)
	}
	if d.Layout.Padding != DefaultPadding {
		t.Errorf("padding = %d, want %d", d.Layout.Padding, DefaultPadding)
	}
	if d.Layout.AspectRatio != DefaultAspectRatio {
		t.Errorf("aspect ratio = %q, want %q", d.Layout.AspectRatio, DefaultAspectRatio)
	}
	if got := d.Widgets[0].Position; got.RowSpan != 1 || got.ColSpan != 1 {
		t.Errorf("spans = %dx%d, want 1x1", got.RowSpan, got.ColSpan)
	}
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`{not json`))
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestRead(t *testing.T) {
	d, err := Read(strings.NewReader(`{"title":"Sales","widgets":[]}`))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if d.Title != "Sales" {
		t.Errorf("title = %q, want Sales", d.Title)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		wantErr bool
	}{
		{
			name: "valid two widgets",
			spec: `{"layout":{"columns":12,"rows":2},"widgets":[
				{"type":"kpi","position":{"row":0,"col":0,"colspan":6}},
				{"type":"chart","position":{"row":0,"col":6,"colspan":6}}]}`,
		},
		{
			name: "overlap",
			spec: `{"layout":{"columns":12,"rows":2},"widgets":[
				{"type":"kpi","position":{"row":0,"col":0,"colspan":8}},
				{"type":"chart","position":{"row":0,"col":6,"colspan":6}}]}`,
			wantErr: true,
		},
		{
			name: "exceeds columns",
			spec: `{"layout":{"columns":12,"rows":2},"widgets":[
				{"type":"kpi","position":{"row":0,"col":10,"colspan":4}}]}`,
			wantErr: true,
		},
		{
			name: "exceeds rows",
			spec: `{"layout":{"columns":12,"rows":2},"widgets":[
				{"type":"kpi","position":{"row":1,"col":0,"rowspan":2}}]}`,
			wantErr: true,
		},
		{
			name: "negative position",
			spec: `{"layout":{"columns":12,"rows":2},"widgets":[
				{"type":"kpi","position":{"row":-1,"col":0}}]}`,
			wantErr: true,
		},
		{
			name:    "zero grid",
			spec:    `{"layout":{"columns":-1,"rows":2},"widgets":[]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse([]byte(tt.spec))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			err = d.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestCloneIndependent(t *testing.T) {
	d, err := Parse([]byte(`{"title":"A","layout":{"columns":6,"rows":2},
		"widgets":[{"type":"kpi","position":{"row":0,"col":0},"config":{"label":"Revenue"}}]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	c := d.Clone()
	c.Title = "B"
	c.Layout.Rows = 5
	c.Widgets[0].Position.Col = 3

	if d.Title != "A" || d.Layout.Rows != 2 || d.Widgets[0].Position.Col != 0 {
		t.Errorf("clone mutation leaked into original: %+v", d)
	}
	if got := c.Widgets[0].ConfigMap()["label"]; got != "Revenue" {
		t.Errorf("clone config label = %v, want Revenue", got)
	}
}

func TestConfigMapEmpty(t *testing.T) {
	w := Widget{Type: TypeKPI}
	m := w.ConfigMap()
	if m == nil || len(m) != 0 {
		t.Errorf("config map = %v, want empty map", m)
	}
}
