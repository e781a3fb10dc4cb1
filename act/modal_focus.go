package act

import (
	"context"

	"github.com/a11yscan/auditor/report"
)

// ModalFocusProbe checks that every visible aria-modal="true" dialog
// contains at least one focusable child and a discoverable close control.
type ModalFocusProbe struct{}

func (ModalFocusProbe) ID() string { return "modal-focus" }

const modalFocusScript = `() => {
	const focusableSel = 'a[href], button, input, select, textarea, [tabindex]:not([tabindex="-1"])';
	const closeSel = 'button, [role="button"], a';
	const closePatterns = /close|dismiss|cancel|×|zavřít/i;

	const modals = Array.from(document.querySelectorAll('[aria-modal="true"]')).filter(m => {
		const s = window.getComputedStyle(m);
		return s.display !== 'none' && s.visibility !== 'hidden';
	});

	return modals.map(m => {
		const focusables = m.querySelectorAll(focusableSel);
		const closers = Array.from(m.querySelectorAll(closeSel));
		const hasClose = closers.some(el =>
			closePatterns.test(el.textContent || '') ||
			closePatterns.test(el.getAttribute('aria-label') || ''));
		const r = m.getBoundingClientRect();
		return {
			hasFocusable: focusables.length > 0,
			hasClose,
			html: m.outerHTML.slice(0, 300),
			selector: m.id ? '#' + m.id : '[aria-modal="true"]',
			x: r.x, y: r.y, width: r.width, height: r.height,
		};
	});
}`

type modalFocusResult struct {
	HasFocusable bool    `json:"hasFocusable"`
	HasClose     bool    `json:"hasClose"`
	HTML         string  `json:"html"`
	Selector     string  `json:"selector"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
}

func (ModalFocusProbe) Run(ctx context.Context, page Evaluator, pageURL string) (*Finding, error) {
	var modals []modalFocusResult
	if err := page.EvalJSON(ctx, modalFocusScript, &modals); err != nil {
		return nil, err
	}

	finding := &Finding{}
	var noFocusable, noClose []report.ViolationNode

	for _, m := range modals {
		node := report.ViolationNode{
			HTML:             m.HTML,
			Target:           []string{m.Selector},
			FriendlySelector: m.Selector,
			BoundingBox:      &report.BoundingBox{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height},
		}
		if !m.HasFocusable {
			noFocusable = append(noFocusable, node)
		}
		if !m.HasClose {
			noClose = append(noClose, node)
		}
	}

	if len(noFocusable) > 0 {
		v := singleViolation("modal-focus-no-focusable", "Modal dialog has no focusable content",
			"An open modal dialog contains no focusable element, so keyboard users cannot interact with it.",
			report.SeverityCritical, "ca4dcb", "focus-trap", noFocusable)
		finding.Violations = append(finding.Violations, v)
		finding.ActionItems = append(finding.ActionItems, actionItemFor(pageURL, v, "Keyboard", "2.1.1", report.WCAGLevelA))
	}

	if len(noClose) > 0 {
		v := singleViolation("modal-focus-no-close-affordance", "Modal dialog has no discoverable close control",
			"An open modal dialog has no button, link, or labeled control recognizable as a way to close it.",
			report.SeverityModerate, "ca4dcb", "focus-trap", noClose)
		finding.Violations = append(finding.Violations, v)
		finding.ActionItems = append(finding.ActionItems, actionItemFor(pageURL, v, "Keyboard", "2.1.2", report.WCAGLevelA))
	}

	return finding, nil
}
