package normalize

import "github.com/a11yscan/auditor/report"

// BuildCustomActionItem derives an ActionItem for a violation produced by a
// custom ACT probe. Unlike rules-engine violations, probes know their own
// category and WCAG binding directly, so no rule-table lookup happens here.
func BuildCustomActionItem(pageURL string, v report.Violation, category, criterion string, level report.WCAGLevel) report.ActionItem {
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
		What:          v.Description,
		Fix:           v.SuggestedFix,
		ExampleURL:    pageURL,
		ExampleTarget: exampleSelector,
		WCAGCriterion: criterion,
		ACTRuleIDs:    v.ACTRuleIDs,
		ACTRuleURLs:   v.ACTRuleURLs,
		ElementLabel:  exampleLabel,
		Fingerprint:   Fingerprint(pageURL, exampleSelector, exampleLabel),
	}
}
