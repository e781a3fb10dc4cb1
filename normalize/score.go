package normalize

import (
	"math"

	"github.com/a11yscan/auditor/report"
)

// severityWeight is the per-impact subtraction weight used by Score.
var severityWeight = map[report.Severity]float64{
	report.SeverityCritical: 5,
	report.SeveritySerious:  3,
	report.SeverityModerate: 1,
	report.SeverityMinor:    0.5,
}

// impactWeight is the per-impact multiplier used by PriorityScore. Kept
// separate from severityWeight even though the critical/serious/moderate
// ordering matches: one scale uses raw node count, the other sqrt of
// occurrences, and they must not be unified.
var impactWeight = map[report.Severity]float64{
	report.SeverityCritical: 4,
	report.SeveritySerious:  3,
	report.SeverityModerate: 2,
	report.SeverityMinor:    1,
}

var wcagWeight = map[report.WCAGLevel]float64{
	report.WCAGLevelA:       3,
	report.WCAGLevelAA:      2,
	report.WCAGLevelAAA:     1,
	report.WCAGLevelUnknown: 1,
}

// Score computes the page score: start at 100, subtract
// weight(impact) x nodeCount for every violation, clamp to [0,100], round.
func Score(violations []report.Violation) int {
	score := 100.0
	for _, v := range violations {
		w, ok := severityWeight[v.Severity]
		if !ok {
			w = severityWeight[report.SeverityMinor]
		}
		score -= w * float64(v.Count)
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return int(math.Round(score))
}

// PriorityScore ranks one action item for ordering: impactWeight x
// wcagWeight x max(1, sqrt(occurrences)).
func PriorityScore(impact report.Severity, level report.WCAGLevel, occurrences int) float64 {
	iw, ok := impactWeight[impact]
	if !ok {
		iw = impactWeight[report.SeverityMinor]
	}
	ww, ok := wcagWeight[level]
	if !ok {
		ww = wcagWeight[report.WCAGLevelUnknown]
	}
	occ := math.Sqrt(float64(occurrences))
	if occ < 1 {
		occ = 1
	}
	return iw * ww * occ
}

// PriorityLabel buckets a numeric PriorityScore into a coarse label for
// display, ordered the same way the score itself orders.
func PriorityLabel(score float64) string {
	switch {
	case score >= 20:
		return "P0"
	case score >= 10:
		return "P1"
	case score >= 4:
		return "P2"
	default:
		return "P3"
	}
}

// TopIssues selects the top-n action items by (priorityScore DESC,
// occurrences DESC), a total order.
func TopIssues(items []report.ActionItem, occurrences map[string]int, n int) []report.ActionItem {
	sorted := make([]report.ActionItem, len(items))
	copy(sorted, items)

	less := func(i, j int) bool {
		if sorted[i].PriorityScore != sorted[j].PriorityScore {
			return sorted[i].PriorityScore > sorted[j].PriorityScore
		}
		return occurrences[sorted[i].RuleID] > occurrences[sorted[j].RuleID]
	}

	// Simple insertion sort: action-item lists are small (one per rule).
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && less(j, j-1); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
