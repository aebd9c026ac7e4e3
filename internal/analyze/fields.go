// Package analyze infers field types from raw datasets, detects
// visualization patterns, and recommends dashboard widgets. The rules run
// without a model; a language model optionally refines the result and any
// model failure falls back to the rule-based output.
package analyze

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"time"
)

// FieldType classifies a dataset column.
type FieldType string

const (
	TypeNull        FieldType = "null"
	TypeObject      FieldType = "object"
	TypeArray       FieldType = "array"
	TypeBoolean     FieldType = "boolean"
	TypeNumeric     FieldType = "numeric"
	TypeTemporal    FieldType = "temporal"
	TypeCategorical FieldType = "categorical"
	TypeText        FieldType = "text"
)

// temporalThreshold is the fraction of values that must parse as dates for
// a string field to classify as temporal.
const temporalThreshold = 0.8

// categoricalUniqueRatio is the unique-value ratio below which a string
// field classifies as categorical rather than free text.
const categoricalUniqueRatio = 0.5

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"02/01/2006",
	"2006-01",
	"2006",
}

// Field is the analysis of one dataset column.
type Field struct {
	Name         string         `json:"name"`
	Type         FieldType      `json:"type"`
	Cardinality  int            `json:"cardinality"`
	SampleValues []any          `json:"sample_values"`
	Summary      map[string]any `json:"summary"`
}

// InferFieldType classifies a column from its values. Checks run in a
// fixed order so mixed columns resolve deterministically; anything that
// matches no earlier rule is free text.
func InferFieldType(values []any) FieldType {
	nonNull := dropNulls(values)
	if len(nonNull) == 0 {
		return TypeNull
	}

	if allOf(nonNull, func(v any) bool { _, ok := v.(map[string]any); return ok }) {
		return TypeObject
	}
	if allOf(nonNull, func(v any) bool { _, ok := v.([]any); return ok }) {
		return TypeArray
	}
	if allOf(nonNull, func(v any) bool { _, ok := v.(bool); return ok }) {
		return TypeBoolean
	}
	if allOf(nonNull, isNumber) {
		return TypeNumeric
	}

	temporal := 0
	for _, v := range nonNull {
		if s, ok := v.(string); ok && parsesAsDate(s) {
			temporal++
		}
	}
	if float64(temporal) > float64(len(nonNull))*temporalThreshold {
		return TypeTemporal
	}

	if allOf(nonNull, func(v any) bool { _, ok := v.(string); return ok }) {
		if float64(cardinality(nonNull))/float64(len(nonNull)) < categoricalUniqueRatio {
			return TypeCategorical
		}
		return TypeText
	}

	return TypeText
}

// AnalyzeField classifies one column and attaches a type-specific summary.
func AnalyzeField(name string, values []any) Field {
	ft := InferFieldType(values)
	nonNull := dropNulls(values)

	f := Field{
		Name:         name,
		Type:         ft,
		Cardinality:  cardinality(nonNull),
		SampleValues: samples(nonNull, 5),
		Summary:      map[string]any{},
	}

	switch ft {
	case TypeNumeric:
		min, max, sum := 0.0, 0.0, 0.0
		for i, v := range nonNull {
			n := asNumber(v)
			if i == 0 || n < min {
				min = n
			}
			if i == 0 || n > max {
				max = n
			}
			sum += n
		}
		if len(nonNull) > 0 {
			f.Summary = map[string]any{"min": min, "max": max, "mean": sum / float64(len(nonNull))}
		}
	case TypeCategorical:
		counts := map[string]int{}
		var unique []string
		for _, v := range nonNull {
			s, ok := v.(string)
			if !ok {
				continue
			}
			if counts[s] == 0 {
				unique = append(unique, s)
			}
			counts[s]++
		}
		f.Summary = map[string]any{"unique_values": unique, "value_counts": counts}
	case TypeTemporal:
		first, last := "", ""
		for _, v := range nonNull {
			s, ok := v.(string)
			if !ok {
				continue
			}
			if first == "" || s < first {
				first = s
			}
			if s > last {
				last = s
			}
		}
		f.Summary = map[string]any{"first": first, "last": last, "count": len(nonNull)}
	}

	return f
}

// Fingerprint hashes the dataset's field-name to inferred-type mapping
// into 16 hex characters, used to match saved configs against new data
// with the same shape.
func Fingerprint(data map[string]any) string {
	schema := make(map[string]string, len(data))
	for name, v := range data {
		if values, ok := v.([]any); ok {
			schema[name] = string(InferFieldType(values))
		} else {
			schema[name] = scalarTypeName(v)
		}
	}
	canonical, _ := json.Marshal(schema) // map keys marshal sorted
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])[:16]
}

// AnalyzeFields classifies every list-valued column, in name order for
// deterministic output.
func AnalyzeFields(data map[string]any) []Field {
	names := make([]string, 0, len(data))
	for name, v := range data {
		if _, ok := v.([]any); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, AnalyzeField(name, data[name].([]any)))
	}
	return fields
}

func dropNulls(values []any) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}

func allOf(values []any, pred func(any) bool) bool {
	for _, v := range values {
		if !pred(v) {
			return false
		}
	}
	return true
}

func isNumber(v any) bool {
	switch v.(type) {
	case float64, float32, int, int64, json.Number:
		return true
	default:
		return false
	}
}

func asNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, _ := n.Float64()
		return f
	default:
		return 0
	}
}

func parsesAsDate(s string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// cardinality counts distinct values, keying unhashable values by their
// canonical JSON form.
func cardinality(values []any) int {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		key, err := json.Marshal(v)
		if err != nil {
			continue
		}
		seen[string(key)] = true
	}
	return len(seen)
}

func samples(values []any, n int) []any {
	if len(values) <= n {
		return append([]any(nil), values...)
	}
	return append([]any(nil), values[:n]...)
}

func scalarTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case map[string]any:
		return "object"
	default:
		if isNumber(v) {
			return "number"
		}
		return "string"
	}
}
