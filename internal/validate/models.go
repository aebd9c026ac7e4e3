// Package validate evaluates rendered dashboards with a vision model and
// maps the reported layout issues to deterministic spec corrections.
package validate

import (
	"fmt"
	"sort"
	"strings"
)

// Severity orders issues for correction priority.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityMajor    Severity = "major"
	SeverityMinor    Severity = "minor"
)

// severityRank maps severities to sort keys; unknown severities sort last.
func severityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityMajor:
		return 1
	case SeverityMinor:
		return 2
	default:
		return 3
	}
}

// IssueType classifies what the evaluator saw wrong with the layout.
type IssueType string

const (
	IssueOverlap     IssueType = "overlap"
	IssueSpacing     IssueType = "spacing"
	IssueTruncation  IssueType = "truncation"
	IssueSizing      IssueType = "sizing"
	IssueAlignment   IssueType = "alignment"
	IssueReadability IssueType = "readability"
)

// Issue is one layout problem reported by the evaluator.
type Issue struct {
	Type            IssueType `json:"issue_type"`
	Severity        Severity  `json:"severity"`
	Description     string    `json:"description"`
	AffectedWidgets []int     `json:"affected_widgets"`
}

// Result is one evaluation of a rendered image. Results are immutable
// once produced and kept as per-iteration history.
type Result struct {
	IsAcceptable bool    `json:"is_acceptable"`
	Issues       []Issue `json:"issues"`
	Confidence   float64 `json:"confidence"`
	Reasoning    string  `json:"reasoning"`
}

// sortedIssues returns the issues ordered critical first, ties keeping
// their reported order.
func sortedIssues(issues []Issue) []Issue {
	out := append([]Issue(nil), issues...)
	sort.SliceStable(out, func(i, j int) bool {
		return severityRank(out[i].Severity) < severityRank(out[j].Severity)
	})
	return out
}

// issueKey identifies an issue by type and affected widgets, ignoring
// wording changes in the description.
func issueKey(i Issue) string {
	widgets := append([]int(nil), i.AffectedWidgets...)
	sort.Ints(widgets)
	parts := make([]string, len(widgets))
	for n, w := range widgets {
		parts[n] = fmt.Sprintf("%d", w)
	}
	return string(i.Type) + ":" + strings.Join(parts, ",")
}

// Diverged reports whether the later of two consecutive results shows the
// loop stuck or regressing: strictly more issues than before, or the same
// count with an identical (type, affected widgets) set.
func Diverged(prev, curr Result) bool {
	if len(curr.Issues) > len(prev.Issues) {
		return true
	}
	if len(curr.Issues) != len(prev.Issues) {
		return false
	}
	prevKeys := make(map[string]int, len(prev.Issues))
	for _, i := range prev.Issues {
		prevKeys[issueKey(i)]++
	}
	for _, i := range curr.Issues {
		key := issueKey(i)
		if prevKeys[key] == 0 {
			return false
		}
		prevKeys[key]--
	}
	return true
}
