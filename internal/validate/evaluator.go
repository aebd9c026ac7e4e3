package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dashkite/dashgen/internal/llm"
	"github.com/dashkite/dashgen/internal/spec"
)

// Evaluator judges a rendered dashboard image against its spec.
type Evaluator interface {
	Evaluate(ctx context.Context, imagePNG []byte, d *spec.Dashboard) (Result, error)
}

const evaluatorInstructions = `You are a dashboard layout reviewer. You receive a rendered dashboard image and a summary of the spec that produced it. Report layout problems as JSON:
{
  "is_acceptable": bool,
  "issues": [{"issue_type": "overlap|spacing|truncation|sizing|alignment|readability", "severity": "critical|major|minor", "description": "...", "affected_widgets": [int]}],
  "confidence": float between 0 and 1,
  "reasoning": "one short paragraph"
}
Widget indices refer to the numbered list in the summary. Only report problems visible in the image. An empty issues list with is_acceptable=true means the layout is fine.`

// VLMEvaluator implements Evaluator over the vision model.
type VLMEvaluator struct {
	client llm.Client
	model  string
}

// NewVLMEvaluator builds an evaluator. An empty model falls back to the
// environment or the default vision model.
func NewVLMEvaluator(client llm.Client, model string) *VLMEvaluator {
	return &VLMEvaluator{client: client, model: llm.VisionModel(model)}
}

func (e *VLMEvaluator) Evaluate(ctx context.Context, imagePNG []byte, d *spec.Dashboard) (Result, error) {
	raw, err := e.client.Complete(ctx, llm.Request{
		Model:        e.model,
		Instructions: evaluatorInstructions,
		Prompt:       "Evaluate this rendered dashboard.\n\n" + SpecSummary(d),
		ImagePNG:     imagePNG,
	})
	if err != nil {
		return Result{}, err
	}
	var res Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return Result{}, fmt.Errorf("%w: decode evaluation: %v", llm.ErrModel, err)
	}
	return res, nil
}

// SpecSummary renders the spec as the human-readable text the evaluator
// sees alongside the image: title, grid size, and one line per widget.
func SpecSummary(d *spec.Dashboard) string {
	var b strings.Builder
	if d.Title != "" {
		fmt.Fprintf(&b, "Title: %s\n", d.Title)
	}
	fmt.Fprintf(&b, "Grid: %d columns x %d rows\n", d.Layout.Columns, d.Layout.Rows)
	fmt.Fprintf(&b, "Widgets (%d):\n", len(d.Widgets))
	for i, w := range d.Widgets {
		p := w.Position
		line := fmt.Sprintf("  %d. %s at row=%d col=%d rowspan=%d colspan=%d", i, w.Type, p.Row, p.Col, p.RowSpan, p.ColSpan)
		if t := widgetTitle(w); t != "" {
			line += fmt.Sprintf(" (%q)", t)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func widgetTitle(w spec.Widget) string {
	cfg := w.ConfigMap()
	for _, key := range []string{"title", "label"} {
		if v, ok := cfg[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
