package normalize

import (
	"time"

	"github.com/a11yscan/auditor/engine"
	"github.com/a11yscan/auditor/report"
)

func toSeverity(impact engine.Impact) report.Severity {
	switch impact {
	case engine.ImpactCritical:
		return report.SeverityCritical
	case engine.ImpactSerious:
		return report.SeveritySerious
	case engine.ImpactModerate:
		return report.SeverityModerate
	default:
		return report.SeverityMinor
	}
}

// MapToReport converts one rules-engine Result into a skeleton AuditReport:
// violations bucketed by severity, one ActionItem per rule, and the score
// computed over the full violation set. Custom ACT probe output is merged
// in afterward via Merge.
func MapToReport(pageURL string, result *engine.Result) *report.AuditReport {
	rpt := &report.AuditReport{
		URL:       pageURL,
		Timestamp: time.Now().UTC(),
		Meta: report.Meta{
			EngineVersion: result.TestEngine.Version,
		},
	}

	var actionItems []report.ActionItem
	occurrences := map[string]int{}

	for _, v := range result.Violations {
		severity := toSeverity(v.Impact)
		violation := buildViolation(pageURL, v, severity)

		switch severity {
		case report.SeverityCritical:
			rpt.Violations.Critical = append(rpt.Violations.Critical, violation)
		case report.SeveritySerious:
			rpt.Violations.Serious = append(rpt.Violations.Serious, violation)
		case report.SeverityModerate:
			rpt.Violations.Moderate = append(rpt.Violations.Moderate, violation)
		default:
			rpt.Violations.Minor = append(rpt.Violations.Minor, violation)
		}

		occurrences[v.ID] = len(v.Nodes)
		actionItems = append(actionItems, buildActionItem(pageURL, violation))
	}

	rpt.HumanReadable.ActionItems = actionItems
	rpt.HumanReadable.TopIssues = TopIssues(actionItems, occurrences, 3)

	recomputeStats(rpt)
	rpt.Score = Score(allViolations(rpt))

	return rpt
}

func buildViolation(pageURL string, v engine.Violation, severity report.Severity) report.Violation {
	meta, ok := Lookup(v.ID)

	nodes := make([]report.ViolationNode, 0, len(v.Nodes))
	for _, n := range v.Nodes {
		label := ElementLabel(n.HTML)
		nodes = append(nodes, report.ViolationNode{
			HTML:             n.HTML,
			Target:           n.Target,
			FailureSummary:   n.FailureSummary,
			FriendlySelector: FriendlySelector(n.Target, n.HTML),
			ElementLabel:     label,
			Impact:           toSeverityOrEmpty(n.Impact),
		})
	}

	help := v.Help
	if help == "" && ok {
		help = meta.What
	}

	violation := report.Violation{
		RuleID:      v.ID,
		Title:       help,
		Description: v.Description,
		Severity:    severity,
		HelpURL:     v.HelpURL,
		Count:       len(v.Nodes),
		Nodes:       nodes,
	}
	if ok {
		violation.SuggestedFix = meta.Fix
	} else {
		violation.SuggestedFix = genericFix
	}
	return violation
}

func toSeverityOrEmpty(impact engine.Impact) report.Severity {
	if impact == "" {
		return ""
	}
	return toSeverity(impact)
}

func buildActionItem(pageURL string, v report.Violation) report.ActionItem {
	meta, ok := Lookup(v.RuleID)

	category := genericCategory
	what := genericWhat
	fix := v.SuggestedFix
	criterion := ""
	level := report.WCAGLevelUnknown
	if ok {
		category = meta.Category
		what = meta.What
		criterion = meta.WCAGCriterion
		level = meta.WCAGLevel
	}
	if fix == "" {
		fix = genericFix
	}

	var exampleSelector, exampleLabel string
	if len(v.Nodes) > 0 {
		exampleSelector = v.Nodes[0].FriendlySelector
		exampleLabel = v.Nodes[0].ElementLabel
	}

	priority := PriorityScore(v.Severity, level, v.Count)

	return report.ActionItem{
		RuleID:        v.RuleID,
		Impact:        v.Severity,
		Priority:      PriorityLabel(priority),
		PriorityScore: priority,
		Category:      category,
		What:          what,
		Fix:           fix,
		ExampleURL:    pageURL,
		ExampleTarget: exampleSelector,
		WCAGCriterion: criterion,
		ACTRuleIDs:    v.ACTRuleIDs,
		ACTRuleURLs:   v.ACTRuleURLs,
		ElementLabel:  exampleLabel,
		Fingerprint:   Fingerprint(pageURL, exampleSelector, exampleLabel),
	}
}

func allViolations(rpt *report.AuditReport) []report.Violation {
	all := make([]report.Violation, 0,
		len(rpt.Violations.Critical)+len(rpt.Violations.Serious)+len(rpt.Violations.Moderate)+len(rpt.Violations.Minor))
	all = append(all, rpt.Violations.Critical...)
	all = append(all, rpt.Violations.Serious...)
	all = append(all, rpt.Violations.Moderate...)
	all = append(all, rpt.Violations.Minor...)
	return all
}

func recomputeStats(rpt *report.AuditReport) {
	total := 0
	critical := 0
	for _, v := range rpt.Violations.Critical {
		total += v.Count
		critical += v.Count
	}
	for _, v := range rpt.Violations.Serious {
		total += v.Count
	}
	for _, v := range rpt.Violations.Moderate {
		total += v.Count
	}
	for _, v := range rpt.Violations.Minor {
		total += v.Count
	}
	rpt.Stats = report.Stats{TotalViolations: total, CriticalCount: critical}
}

// ACTFinding is what a custom ACT probe contributes: either a full
// violation (new rule) or an addition to an existing one is treated as a
// distinct rule id, since ACT probes register their own rule ids directly.
type ACTFinding struct {
	Violation  report.Violation
	ActionItem report.ActionItem
}

// Merge appends custom ACT suite output to an already-built AuditReport and
// recomputes stats and top issues: custom probe violations are appended
// after the rules-engine pass, and totalViolations/criticalCount must be
// recomputed on merge.
func Merge(rpt *report.AuditReport, findings []ACTFinding) {
	for _, f := range findings {
		switch f.Violation.Severity {
		case report.SeverityCritical:
			rpt.Violations.Critical = append(rpt.Violations.Critical, f.Violation)
		case report.SeveritySerious:
			rpt.Violations.Serious = append(rpt.Violations.Serious, f.Violation)
		case report.SeverityModerate:
			rpt.Violations.Moderate = append(rpt.Violations.Moderate, f.Violation)
		default:
			rpt.Violations.Minor = append(rpt.Violations.Minor, f.Violation)
		}
		rpt.HumanReadable.ActionItems = append(rpt.HumanReadable.ActionItems, f.ActionItem)
	}

	recomputeStats(rpt)
	rpt.Score = Score(allViolations(rpt))

	occurrences := map[string]int{}
	for _, v := range allViolations(rpt) {
		occurrences[v.RuleID] = v.Count
	}
	rpt.HumanReadable.TopIssues = TopIssues(rpt.HumanReadable.ActionItems, occurrences, 3)
}
