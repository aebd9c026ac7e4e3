package dashboard

import (
	"context"
	"fmt"
	"os"

	"github.com/dashkite/dashgen/internal/spec"
	"github.com/dashkite/dashgen/internal/theme"
	"github.com/dashkite/dashgen/internal/validate"
)

// DefaultMaxIterations bounds the render/evaluate/correct loop.
const DefaultMaxIterations = 3

// RenderResult is the outcome of a validated render. Path is the last
// image written; Paths holds every iteration's artifact in order.
type RenderResult struct {
	Path        string                      `json:"path"`
	Paths       []string                    `json:"paths"`
	Iterations  int                         `json:"iterations"`
	Accepted    bool                        `json:"accepted"`
	History     []validate.Result           `json:"history,omitempty"`
	Corrections []validate.CorrectionRecord `json:"corrections,omitempty"`
	Warning     string                      `json:"warning,omitempty"`
	VLMError    string                      `json:"vlm_error,omitempty"`
	Final       *spec.Dashboard             `json:"final_spec,omitempty"`
}

// RenderValidated renders d, asks the evaluator whether the layout is
// acceptable, and re-renders with corrections until acceptance, the
// iteration cap, divergence, or an uncorrectable result. Render failures
// abort; evaluator failures stop the loop but keep what was rendered.
// Iteration n past the first writes to "{filename}_iter{n}".
func RenderValidated(ctx context.Context, d *spec.Dashboard, th theme.Theme, opts RenderOptions, ev validate.Evaluator, engine validate.Engine, maxIterations int) (*RenderResult, error) {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	current := d.Clone()
	res := &RenderResult{Final: current}

	for i := 0; i < maxIterations; i++ {
		iterOpts := opts
		if i > 0 {
			iterOpts.Filename = fmt.Sprintf("%s_iter%d", opts.Filename, i)
		}

		path, err := Render(current, th, iterOpts)
		if err != nil {
			return nil, err
		}
		res.Path = path
		res.Paths = append(res.Paths, path)
		res.Iterations = i + 1

		img, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read rendered image: %w", err)
		}

		vres, err := ev.Evaluate(ctx, img, current)
		if err != nil {
			res.VLMError = err.Error()
			return res, nil
		}
		res.History = append(res.History, vres)

		if vres.IsAcceptable {
			res.Accepted = true
			res.Final = current
			return res, nil
		}

		if n := len(res.History); n >= 2 && validate.Diverged(res.History[n-2], res.History[n-1]) {
			res.Warning = "validation diverging, keeping last render"
			res.Final = current
			return res, nil
		}

		if i == maxIterations-1 {
			res.Warning = fmt.Sprintf("reached %d iterations with outstanding issues", maxIterations)
			res.Final = current
			return res, nil
		}

		corrected, applied := engine.Correct(vres, current)
		if len(applied) == 0 {
			res.Warning = "no applicable corrections for reported issues"
			res.Final = current
			return res, nil
		}
		for _, c := range applied {
			res.Corrections = append(res.Corrections, c.Record())
		}
		current = corrected
		res.Final = current
	}

	return res, nil
}
