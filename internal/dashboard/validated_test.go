package dashboard

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dashkite/dashgen/internal/export"
	"github.com/dashkite/dashgen/internal/spec"
	"github.com/dashkite/dashgen/internal/validate"
)

// scriptedEvaluator returns canned results per iteration.
type scriptedEvaluator struct {
	results []validate.Result
	errs    []error
	calls   int
	specs   []*spec.Dashboard
}

func (s *scriptedEvaluator) Evaluate(ctx context.Context, imagePNG []byte, d *spec.Dashboard) (validate.Result, error) {
	i := s.calls
	s.calls++
	s.specs = append(s.specs, d.Clone())
	if i < len(s.errs) && s.errs[i] != nil {
		return validate.Result{}, s.errs[i]
	}
	if i >= len(s.results) {
		return validate.Result{IsAcceptable: true}, nil
	}
	return s.results[i], nil
}

func renderOpts(t *testing.T) RenderOptions {
	t.Helper()
	return RenderOptions{
		OutputDir:  t.TempDir(),
		Filename:   "dash",
		Format:     export.FormatPNG,
		Resolution: "320x180",
	}
}

func validatedSpec(t *testing.T) *spec.Dashboard {
	t.Helper()
	return parseSpec(t, `{"layout":{"columns":12,"rows":2},"widgets":[
		{"type":"kpi","position":{"row":0,"col":0,"colspan":6},"config":{"value":42}},
		{"type":"kpi","position":{"row":0,"col":6,"colspan":6},"config":{"value":7}}]}`)
}

func TestRenderValidatedAcceptsFirstPass(t *testing.T) {
	ev := &scriptedEvaluator{results: []validate.Result{{IsAcceptable: true}}}
	res, err := RenderValidated(context.Background(), validatedSpec(t), testTheme(t),
		renderOpts(t), ev, validate.NewEngine(), 3)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if !res.Accepted || res.Iterations != 1 {
		t.Errorf("accepted=%v iterations=%d, want true/1", res.Accepted, res.Iterations)
	}
	if len(res.Paths) != 1 {
		t.Fatalf("paths = %v, want one entry", res.Paths)
	}
	if filepath.Base(res.Path) != "dash.png" {
		t.Errorf("path = %s, want dash.png", res.Path)
	}
	if _, err := os.Stat(res.Path); err != nil {
		t.Errorf("rendered file missing: %v", err)
	}
}

func TestRenderValidatedAppliesCorrections(t *testing.T) {
	overlap := validate.Result{Issues: []validate.Issue{
		{Type: validate.IssueOverlap, Severity: validate.SeverityCritical},
	}}
	ev := &scriptedEvaluator{results: []validate.Result{overlap, {IsAcceptable: true}}}

	res, err := RenderValidated(context.Background(), validatedSpec(t), testTheme(t),
		renderOpts(t), ev, validate.NewEngine(), 3)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if !res.Accepted || res.Iterations != 2 {
		t.Errorf("accepted=%v iterations=%d, want true/2", res.Accepted, res.Iterations)
	}
	if len(res.Corrections) != 1 || res.Corrections[0].Kind != "grid" {
		t.Errorf("corrections = %+v, want one grid correction", res.Corrections)
	}
	// The second evaluation sees the corrected spec.
	if got := ev.specs[1].Layout.Rows; got != 3 {
		t.Errorf("corrected rows = %d, want 3", got)
	}
	if !strings.HasSuffix(res.Paths[1], "dash_iter1.png") {
		t.Errorf("iteration path = %s, want dash_iter1.png suffix", res.Paths[1])
	}
	if res.Final.Layout.Rows != 3 {
		t.Errorf("final spec rows = %d, want 3", res.Final.Layout.Rows)
	}
}

func TestRenderValidatedStopsOnDivergence(t *testing.T) {
	a := validate.Issue{Type: validate.IssueOverlap, Severity: validate.SeverityCritical}
	b := validate.Issue{Type: validate.IssueSpacing, Description: "too close"}
	ev := &scriptedEvaluator{results: []validate.Result{
		{Issues: []validate.Issue{a}},
		{Issues: []validate.Issue{a, b}},
	}}

	res, err := RenderValidated(context.Background(), validatedSpec(t), testTheme(t),
		renderOpts(t), ev, validate.NewEngine(), 5)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if res.Accepted {
		t.Error("diverging run must not be accepted")
	}
	if res.Iterations != 2 {
		t.Errorf("iterations = %d, want 2", res.Iterations)
	}
	if !strings.Contains(res.Warning, "diverging") {
		t.Errorf("warning = %q, want divergence notice", res.Warning)
	}
}

func TestRenderValidatedIterationCap(t *testing.T) {
	never := validate.Result{Issues: []validate.Issue{
		{Type: validate.IssueTruncation, AffectedWidgets: []int{0}},
	}}
	// Same issue with changing widget sets so divergence never triggers.
	r2 := validate.Result{Issues: []validate.Issue{
		{Type: validate.IssueTruncation, AffectedWidgets: []int{1}},
	}}
	ev := &scriptedEvaluator{results: []validate.Result{never, r2}}

	res, err := RenderValidated(context.Background(), validatedSpec(t), testTheme(t),
		renderOpts(t), ev, validate.NewEngine(), 2)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if res.Iterations != 2 {
		t.Errorf("iterations = %d, want 2", res.Iterations)
	}
	if !strings.Contains(res.Warning, "2 iterations") {
		t.Errorf("warning = %q, want iteration cap notice", res.Warning)
	}
}

func TestRenderValidatedEvaluatorFailure(t *testing.T) {
	ev := &scriptedEvaluator{errs: []error{errors.New("model unavailable")}}

	res, err := RenderValidated(context.Background(), validatedSpec(t), testTheme(t),
		renderOpts(t), ev, validate.NewEngine(), 3)
	if err != nil {
		t.Fatalf("evaluator failure must not fail the render: %v", err)
	}
	if res.VLMError == "" {
		t.Error("expected vlm_error marker")
	}
	if res.Path == "" {
		t.Error("render artifact must survive evaluator failure")
	}
	if res.Accepted {
		t.Error("run with failed evaluation cannot be accepted")
	}
}

func TestRenderValidatedNoCorrections(t *testing.T) {
	// Spacing already at the floor and described as wasted: no-op correction.
	d := validatedSpec(t)
	pad := 10
	d.Style = &spec.Style{WidgetPadding: &pad}

	ev := &scriptedEvaluator{results: []validate.Result{
		{Issues: []validate.Issue{{Type: validate.IssueSpacing, Description: "wasted space"}}},
	}}

	res, err := RenderValidated(context.Background(), d, testTheme(t),
		renderOpts(t), ev, validate.NewEngine(), 3)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if res.Iterations != 1 {
		t.Errorf("iterations = %d, want 1", res.Iterations)
	}
	if !strings.Contains(res.Warning, "no applicable corrections") {
		t.Errorf("warning = %q, want no-corrections notice", res.Warning)
	}
}
