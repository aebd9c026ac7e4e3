// Package iterate turns free-text feedback about a rendered dashboard
// into concrete spec modifications via the language model and applies
// them to a copy of the spec.
package iterate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dashkite/dashgen/internal/llm"
	"github.com/dashkite/dashgen/internal/spec"
)

const modifierInstructions = `You are an expert dashboard designer with deep knowledge of visual hierarchy, spatial composition, and data visualization best practices.

## Style Parameters

| Parameter | Range | Effect |
|-----------|-------|--------|
| font_scale | 0.6-2.0 | Multiplies ALL text. Use 1.3-1.5 for presentation. |
| h_spacing | 0.02-0.15 | Gap between columns. 0.04 = modest, 0.10+ = generous |
| v_spacing | 0.03-0.15 | Gap between rows. 0.06 = modest, 0.10+ = generous |
| title_margin | -0.15-0.15 | Space for title. NEGATIVE values push content UP toward the title. Use -0.06 to -0.10 to move the top row closer to the title. |
| widget_padding | 10-40 | Internal padding in pixels |
| title_size | 20-42 | Dashboard title size in pixels |

## Decision Framework

1. LOOK at the image if one is provided - where is the wasted space? Where is it cramped?
2. Match visual problems to the parameters that control them.
3. Make BOLD changes - if spacing needs to increase, jump from 0.04 to 0.10, not 0.04 to 0.05.
4. Only include fields that need to change; leave everything else null or empty.

## Layout Constraints

- Widget colspans must sum to <= the column count per row; rowspans must not exceed the row count.
- When resizing widgets, ensure adjacent widgets do not overlap.
- When KPIs with deltas sit above charts with titles, keep v_spacing >= 0.06.

Respond with JSON:
{
  "style": {"preset", "font_scale", "h_spacing", "v_spacing", "widget_padding", "title_size", "title_margin"} or null,
  "widget_modifications": [{"widget_index": int, "config_changes": {...}, "position_changes": {"row","col","rowspan","colspan"}}],
  "layout_changes": {"columns": int, "rows": int} or {},
  "reasoning": "explanation of the changes"
}`

// WidgetModification targets one widget by its index in the spec.
type WidgetModification struct {
	WidgetIndex     int            `json:"widget_index"`
	ConfigChanges   map[string]any `json:"config_changes,omitempty"`
	PositionChanges map[string]int `json:"position_changes,omitempty"`
}

// SpecModification is the structured change set the model produces from
// feedback. Nil and empty members mean "leave unchanged".
type SpecModification struct {
	Style               *spec.Style          `json:"style,omitempty"`
	WidgetModifications []WidgetModification `json:"widget_modifications,omitempty"`
	LayoutChanges       map[string]int       `json:"layout_changes,omitempty"`
	Reasoning           string               `json:"reasoning"`
}

// Modifier interprets feedback with the language model. Unlike the
// analyzer there is no rule-based fallback: a model failure fails the
// operation.
type Modifier struct {
	Client llm.Client
	Model  string
}

// Interpret asks the model to translate feedback (plus an optional render
// of the current state) into a SpecModification.
func (m *Modifier) Interpret(ctx context.Context, feedback string, current *spec.Dashboard, imagePNG []byte) (*SpecModification, error) {
	raw, err := m.Client.Complete(ctx, llm.Request{
		Model:        llm.WorkerModel(m.Model),
		Instructions: modifierInstructions,
		Prompt:       buildFeedbackPrompt(feedback, current),
		ImagePNG:     imagePNG,
		Temperature:  0.2,
	})
	if err != nil {
		return nil, err
	}

	var mod SpecModification
	if err := json.Unmarshal(raw, &mod); err != nil {
		return nil, fmt.Errorf("%w: decode modification: %v", llm.ErrModel, err)
	}
	return &mod, nil
}

// Apply merges a modification into a deep copy of d: style fields
// individually, layout grid changes, then per-widget config and position
// updates. Out-of-range widget indices are skipped.
func Apply(d *spec.Dashboard, mod *SpecModification) *spec.Dashboard {
	out := d.Clone()

	if s := mod.Style; s != nil {
		if out.Style == nil {
			out.Style = &spec.Style{}
		}
		if s.Preset != "" {
			out.Style.Preset = s.Preset
		}
		if s.FontScale != nil {
			out.Style.FontScale = s.FontScale
		}
		if s.HSpacing != nil {
			out.Style.HSpacing = s.HSpacing
		}
		if s.VSpacing != nil {
			out.Style.VSpacing = s.VSpacing
		}
		if s.WidgetPadding != nil {
			out.Style.WidgetPadding = s.WidgetPadding
		}
		if s.TitleSize != nil {
			out.Style.TitleSize = s.TitleSize
		}
		if s.TitleMargin != nil {
			out.Style.TitleMargin = s.TitleMargin
		}
	}

	if v, ok := mod.LayoutChanges["columns"]; ok && v > 0 {
		out.Layout.Columns = v
	}
	if v, ok := mod.LayoutChanges["rows"]; ok && v > 0 {
		out.Layout.Rows = v
	}
	if v, ok := mod.LayoutChanges["padding"]; ok && v > 0 {
		out.Layout.Padding = v
	}

	for _, wm := range mod.WidgetModifications {
		if wm.WidgetIndex < 0 || wm.WidgetIndex >= len(out.Widgets) {
			continue
		}
		w := &out.Widgets[wm.WidgetIndex]

		if len(wm.ConfigChanges) > 0 {
			cfg := w.ConfigMap()
			for k, v := range wm.ConfigChanges {
				cfg[k] = v
			}
			if raw, err := json.Marshal(cfg); err == nil {
				w.Config = raw
			}
		}

		for k, v := range wm.PositionChanges {
			switch k {
			case "row":
				w.Position.Row = v
			case "col":
				w.Position.Col = v
			case "rowspan":
				w.Position.RowSpan = v
			case "colspan":
				w.Position.ColSpan = v
			}
		}
	}

	return out
}

func buildFeedbackPrompt(feedback string, d *spec.Dashboard) string {
	styleJSON := "default (no custom style)"
	if d.Style != nil {
		if raw, err := json.Marshal(d.Style); err == nil {
			styleJSON = string(raw)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "User feedback: %q\n\n", feedback)
	b.WriteString("Current dashboard state:\n")
	fmt.Fprintf(&b, "- Title: %s\n", orNone(d.Title))
	fmt.Fprintf(&b, "- Grid: %d columns x %d rows\n", d.Layout.Columns, d.Layout.Rows)
	fmt.Fprintf(&b, "- Current style: %s\n", styleJSON)
	b.WriteString("- Widgets:\n")
	b.WriteString(summarizeWidgets(d))
	b.WriteString("\nBased on the feedback AND your visual analysis, what modifications would fix the issues?\nBe BOLD with changes - small tweaks won't fix significant visual problems.")
	return b.String()
}

func summarizeWidgets(d *spec.Dashboard) string {
	if len(d.Widgets) == 0 {
		return "  No widgets\n"
	}
	var b strings.Builder
	for i, w := range d.Widgets {
		cfg := w.ConfigMap()
		label, _ := cfg["label"].(string)
		if label == "" {
			label, _ = cfg["title"].(string)
		}
		p := w.Position
		fmt.Fprintf(&b, "  [%d] %s: %q at row=%d col=%d, spans %dx%d (col x row)\n",
			i, w.Type, label, p.Row, p.Col, p.ColSpan, p.RowSpan)
	}
	return b.String()
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

// Describe formats applied modifications for command output.
func Describe(mod *SpecModification) []string {
	var out []string
	if mod.Style != nil {
		out = append(out, "style adjusted")
	}
	for _, wm := range mod.WidgetModifications {
		out = append(out, fmt.Sprintf("widget %d modified", wm.WidgetIndex))
	}
	if len(mod.LayoutChanges) > 0 {
		out = append(out, "grid layout changed")
	}
	return out
}
