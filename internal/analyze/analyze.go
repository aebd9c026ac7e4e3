package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dashkite/dashgen/internal/llm"
)

const analysisInstructions = `You are a data visualization expert analyzing datasets to recommend dashboard designs.

Given a dataset with field information:
1. Identify patterns in the data (time series, comparisons, distributions, relationships)
2. Suggest appropriate visualizations for each pattern
3. Generate clarifying questions to refine the dashboard design

Guidelines for widget suggestions:
- KPI cards: For key numeric metrics (totals, averages, percentages)
- Line charts: For temporal trends
- Bar charts: For categorical comparisons
- Pie charts: For part-to-whole relationships (max 5-7 categories)
- Scatter plots: For relationships between two numeric variables
- Gauges: For progress toward a target
- Tables: For detailed data that doesn't fit visualizations

Respond with JSON: {"fields": [...], "patterns": [{"pattern_type","confidence","involved_fields","description"}], "suggested_widgets": [{"widget_type","chart_type","data_fields","reason","priority"}], "questions": [{"id","question","options","suggestions","required","multi_select"}]}

Provide practical, actionable recommendations for business dashboards.`

// Result is a complete dataset analysis.
type Result struct {
	Fields            []Field      `json:"fields"`
	Patterns          []Pattern    `json:"patterns"`
	SuggestedWidgets  []Suggestion `json:"suggested_widgets"`
	Questions         []Question   `json:"questions"`
	SchemaFingerprint string       `json:"schema_fingerprint"`
	MatchingConfigs   []string     `json:"matching_configs"`
}

// Analyzer turns raw datasets into dashboard recommendations. With a nil
// Client the rules run alone; MatchConfigs, when set, resolves saved
// config names for the dataset's fingerprint.
type Analyzer struct {
	Client       llm.Client
	Model        string
	MatchConfigs func(fingerprint string) []string
}

// Analyze classifies the dataset's fields and produces patterns, widget
// suggestions, and (optionally) clarifying questions. A configured model
// refines the rule-based result only when questions are requested, since
// refinement and question generation share one model round trip; a
// suggestions-only pass stays local. Any model failure keeps the
// rule-based output instead.
func (a *Analyzer) Analyze(ctx context.Context, data map[string]any, includeQuestions bool) Result {
	fields := AnalyzeFields(data)
	patterns := DetectPatterns(fields)

	res := Result{
		Fields:            fields,
		Patterns:          patterns,
		SuggestedWidgets:  SuggestWidgets(fields, patterns),
		SchemaFingerprint: Fingerprint(data),
		MatchingConfigs:   []string{},
	}
	if a.MatchConfigs != nil {
		if names := a.MatchConfigs(res.SchemaFingerprint); names != nil {
			res.MatchingConfigs = names
		}
	}

	if a.Client != nil && includeQuestions {
		if enriched, err := a.enrich(ctx, res); err == nil {
			return enriched
		}
	}

	if includeQuestions {
		res.Questions = GenerateQuestions(fields)
	} else {
		res.Questions = []Question{}
	}
	return res
}

// enrich asks the model to refine the rule-based analysis. Fingerprint
// and config matches always come from the local computation.
func (a *Analyzer) enrich(ctx context.Context, base Result) (Result, error) {
	raw, err := a.Client.Complete(ctx, llm.Request{
		Model:        llm.WorkerModel(a.Model),
		Instructions: analysisInstructions,
		Prompt:       buildPrompt(base),
	})
	if err != nil {
		return Result{}, err
	}

	var out Result
	if err := json.Unmarshal(raw, &out); err != nil {
		return Result{}, fmt.Errorf("decode analysis: %w", err)
	}
	if len(out.Fields) == 0 {
		out.Fields = base.Fields
	}
	out.SchemaFingerprint = base.SchemaFingerprint
	out.MatchingConfigs = base.MatchingConfigs
	return out, nil
}

func buildPrompt(res Result) string {
	var fields strings.Builder
	for _, f := range res.Fields {
		sample, _ := json.Marshal(samples(f.SampleValues, 3))
		fmt.Fprintf(&fields, "- %s: %s, %d unique values, sample: %s\n", f.Name, f.Type, f.Cardinality, sample)
	}

	var patterns strings.Builder
	for _, p := range res.Patterns {
		fmt.Fprintf(&patterns, "- %s: %s (confidence: %.0f%%)\n", p.Type, p.Description, p.Confidence*100)
	}

	return fmt.Sprintf(`Analyze this dataset for dashboard visualization recommendations.

## Fields
%s
## Detected Patterns
%s
## Task
1. Confirm or refine the detected patterns
2. Suggest specific widget types and configurations
3. Generate 2-4 clarifying questions to refine the dashboard design

Focus on practical business dashboard recommendations.`, fields.String(), patterns.String())
}
