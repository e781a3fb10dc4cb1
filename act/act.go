// Package act is the custom ACT-style probe suite: a registry of
// independent, in-browser checks that complement the third-party rules
// engine. Each probe is self-contained and evaluates JavaScript inside the
// page via the narrow Evaluator capability — no typed object ever crosses
// the BiDi boundary.
package act

import (
	"context"
	"fmt"

	"github.com/a11yscan/auditor/normalize"
	"github.com/a11yscan/auditor/report"
)

// Evaluator is the capability every probe needs: run a script, get back a
// JSON-decodable value. Satisfied by *session.Session.
type Evaluator interface {
	Eval(ctx context.Context, script string, args ...interface{}) (interface{}, error)
	EvalJSON(ctx context.Context, script string, out interface{}, args ...interface{}) error
}

// Finding is what a probe contributes: zero or more violations, each
// carrying its own pre-built action item (probes know their own category
// and WCAG binding, unlike rules-engine output which goes through the
// normalizer's lookup table).
type Finding struct {
	Violations  []report.Violation
	ActionItems []report.ActionItem
}

// Probe is one independent in-browser check.
type Probe interface {
	ID() string
	Run(ctx context.Context, page Evaluator, pageURL string) (*Finding, error)
}

// Registry is the ordered list of probes the orchestrator runs in its
// custom ACT suite phase.
func Registry() []Probe {
	return []Probe{
		FocusOrderProbe{},
		LandmarksProbe{},
		SkipLinkProbe{},
		ModalFocusProbe{},
		CarouselAutoplayProbe{},
		MetaViewportProbe{},
		OrientationLockProbe{},
		AutoplayMediaProbe{},
		FormErrorsProbe{},
		SuspiciousAltProbe{},
	}
}

// RunAll executes every registered probe in order and collects their
// findings. A probe that errors is logged by the caller and skipped —
// a probe failure degrades gracefully and never aborts the scan.
func RunAll(ctx context.Context, page Evaluator, pageURL string, probes []Probe, onError func(probeID string, err error)) []Finding {
	findings := make([]Finding, 0, len(probes))
	for _, p := range probes {
		f, err := p.Run(ctx, page, pageURL)
		if err != nil {
			if onError != nil {
				onError(p.ID(), err)
			}
			continue
		}
		if f != nil {
			findings = append(findings, *f)
		}
	}
	return findings
}

// actionItemFor wraps normalize.BuildCustomActionItem so probes don't each
// need to import normalize directly.
func actionItemFor(pageURL string, v report.Violation, category, criterion string, level report.WCAGLevel) report.ActionItem {
	return normalize.BuildCustomActionItem(pageURL, v, category, criterion, level)
}

// singleViolation is a convenience constructor for probes that report at
// most one violation per page, with one node per affected element.
func singleViolation(ruleID, title, description string, severity report.Severity, actID, actURL string, nodes []report.ViolationNode) report.Violation {
	return report.Violation{
		RuleID:      ruleID,
		Title:       title,
		Description: description,
		Severity:    severity,
		Count:       len(nodes),
		Nodes:       nodes,
		ACTRuleIDs:  []string{actID},
		ACTRuleURLs: []string{fmt.Sprintf("https://act-rules.github.io/rules/%s", actURL)},
	}
}
