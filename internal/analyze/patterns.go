package analyze

import (
	"fmt"
	"strings"
)

// Pattern is a detected visualization opportunity.
type Pattern struct {
	Type           string   `json:"pattern_type"`
	Confidence     float64  `json:"confidence"`
	InvolvedFields []string `json:"involved_fields"`
	Description    string   `json:"description"`
}

// Suggestion recommends one widget, priority 1 being the most important.
type Suggestion struct {
	WidgetType string   `json:"widget_type"`
	ChartType  string   `json:"chart_type,omitempty"`
	DataFields []string `json:"data_fields"`
	Reason     string   `json:"reason"`
	Priority   int      `json:"priority"`
}

// Question is a clarifying question for refining the dashboard design.
type Question struct {
	ID          string   `json:"id"`
	Question    string   `json:"question"`
	Options     []string `json:"options,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Required    bool     `json:"required,omitempty"`
	MultiSelect bool     `json:"multi_select,omitempty"`
}

// distributionMinCardinality is the variation needed before a numeric
// field is worth a distribution chart.
const distributionMinCardinality = 10

// DetectPatterns derives visualization patterns from classified fields.
func DetectPatterns(fields []Field) []Pattern {
	var temporal, numeric, categorical []Field
	for _, f := range fields {
		switch f.Type {
		case TypeTemporal:
			temporal = append(temporal, f)
		case TypeNumeric:
			numeric = append(numeric, f)
		case TypeCategorical:
			categorical = append(categorical, f)
		}
	}

	var patterns []Pattern

	if len(temporal) > 0 && len(numeric) > 0 {
		patterns = append(patterns, Pattern{
			Type:           "time_series",
			Confidence:     0.9,
			InvolvedFields: append([]string{temporal[0].Name}, names(numeric)...),
			Description:    fmt.Sprintf("Temporal trend: %s over %s", strings.Join(names(numeric), ", "), temporal[0].Name),
		})
	}

	if len(categorical) > 0 && len(numeric) > 0 {
		top := numeric
		if len(top) > 2 {
			top = top[:2]
		}
		patterns = append(patterns, Pattern{
			Type:           "comparison",
			Confidence:     0.85,
			InvolvedFields: append([]string{categorical[0].Name}, names(top)...),
			Description:    fmt.Sprintf("Compare %s across %s", strings.Join(names(top), ", "), categorical[0].Name),
		})
	}

	for _, nf := range numeric {
		if nf.Cardinality > distributionMinCardinality {
			patterns = append(patterns, Pattern{
				Type:           "distribution",
				Confidence:     0.7,
				InvolvedFields: []string{nf.Name},
				Description:    fmt.Sprintf("Distribution of %s", nf.Name),
			})
		}
	}

	if len(numeric) >= 2 {
		patterns = append(patterns, Pattern{
			Type:           "relationship",
			Confidence:     0.6,
			InvolvedFields: []string{numeric[0].Name, numeric[1].Name},
			Description:    fmt.Sprintf("Relationship between %s and %s", numeric[0].Name, numeric[1].Name),
		})
	}

	return patterns
}

// SuggestWidgets maps fields and patterns to prioritized widget
// recommendations: the top numeric metrics as KPI cards, then one chart
// per chart-worthy pattern.
func SuggestWidgets(fields []Field, patterns []Pattern) []Suggestion {
	var suggestions []Suggestion
	priority := 1

	kpis := 0
	for _, f := range fields {
		if f.Type != TypeNumeric || kpis == 3 {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			WidgetType: "kpi",
			DataFields: []string{f.Name},
			Reason:     fmt.Sprintf("Highlight %s as a key metric", f.Name),
			Priority:   priority,
		})
		priority++
		kpis++
	}

	chartFor := map[string]string{
		"time_series":  "line",
		"comparison":   "bar",
		"relationship": "scatter",
	}
	for _, p := range patterns {
		chart, ok := chartFor[p.Type]
		if !ok {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			WidgetType: "chart",
			ChartType:  chart,
			DataFields: p.InvolvedFields,
			Reason:     p.Description,
			Priority:   priority,
		})
		priority++
	}

	return suggestions
}

// GenerateQuestions builds the rule-based clarifying questions.
func GenerateQuestions(fields []Field) []Question {
	questions := []Question{{
		ID:       "purpose",
		Question: "What is the primary purpose of this dashboard?",
		Options: []string{
			"Executive summary (high-level KPIs)",
			"Operational monitoring (real-time status)",
			"Detailed analysis (exploration)",
		},
		Required: true,
	}}

	var numeric, temporal []Field
	for _, f := range fields {
		switch f.Type {
		case TypeNumeric:
			numeric = append(numeric, f)
		case TypeTemporal:
			temporal = append(temporal, f)
		}
	}

	if len(numeric) > 1 {
		questions = append(questions, Question{
			ID:          "key_metrics",
			Question:    "Which metrics should be most prominent?",
			Suggestions: names(numeric),
			MultiSelect: true,
		})
	}

	if len(temporal) > 0 {
		questions = append(questions, Question{
			ID:       "time_range",
			Question: "What time range should the dashboard focus on?",
			Options: []string{
				"All available data",
				"Most recent period",
				"Specific comparison periods",
			},
		})
	}

	return questions
}

func names(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Name
	}
	return out
}
