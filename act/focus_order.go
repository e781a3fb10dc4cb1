package act

import (
	"context"
	"fmt"

	"github.com/a11yscan/auditor/internal/tabwalk"
	"github.com/a11yscan/auditor/report"
)

// maxFocusOrderSteps bounds how far the probe walks before giving up —
// pages with long but well-behaved tab orders shouldn't run forever.
const maxFocusOrderSteps = 200

// trapWindow is how many Tab presses back a selector can be revisited from
// before the revisit counts as a trap rather than the tab order simply
// wrapping around at the end of the page.
const trapWindow = 10

// visualJumpThreshold is how many pixels a new element's absolute top can
// sit above the previous element's before the jump is flagged.
const visualJumpThreshold = 100.0

// tabWalkable is satisfied by any Evaluator that also exposes PressTab.
// *session.Session is the only production implementation; the type
// assertion in Run lets the probe stay declared against the narrower
// act.Evaluator interface everywhere else.
type tabWalkable interface {
	Eval(ctx context.Context, script string, args ...interface{}) (interface{}, error)
	EvalJSON(ctx context.Context, script string, out interface{}, args ...interface{}) error
	PressTab(ctx context.Context) error
}

// FocusOrderProbe walks the Tab order up to maxFocusOrderSteps and flags
// focus traps, upward visual focus jumps, and focus that bleeds out of an
// open modal.
type FocusOrderProbe struct{}

func (FocusOrderProbe) ID() string { return "focus-order" }

func (FocusOrderProbe) Run(ctx context.Context, page Evaluator, pageURL string) (*Finding, error) {
	tw, ok := page.(tabWalkable)
	if !ok {
		return nil, fmt.Errorf("act: focus-order probe requires a keyboard-capable session")
	}

	lastVisit := map[string]int{}

	var trapNode *report.ViolationNode
	var jumpNodes []report.ViolationNode
	var modalBleedNodes []report.ViolationNode

	prevY := 0.0
	havePrev := false

	for i := 0; i < maxFocusOrderSteps; i++ {
		step, err := tabwalk.ReadStep(ctx, tw)
		if err != nil {
			return nil, err
		}
		if !step.HasActive {
			break
		}

		if j, seen := lastVisit[step.Selector]; seen && trapNode == nil && i-j < trapWindow {
			// A cycle of this length is, by definition, too short to be a
			// legitimate full-page tab-order wrap (those run >=trapWindow
			// presses on any page worth navigating): the same selector is
			// being revisited faster than the page can possibly advance.
			trapNode = &report.ViolationNode{
				HTML:             step.HTML,
				Target:           []string{step.Selector},
				FriendlySelector: step.Selector,
				BoundingBox:      &report.BoundingBox{X: step.X, Y: step.Y, Width: step.Width, Height: step.Height},
			}
		}
		lastVisit[step.Selector] = i

		if havePrev && prevY-step.Y > visualJumpThreshold && len(jumpNodes) < 10 {
			jumpNodes = append(jumpNodes, report.ViolationNode{
				HTML:             step.HTML,
				Target:           []string{step.Selector},
				FriendlySelector: step.Selector,
				BoundingBox:      &report.BoundingBox{X: step.X, Y: step.Y, Width: step.Width, Height: step.Height},
			})
		}
		prevY = step.Y
		havePrev = true

		if step.ModalOpen && !step.ActiveInModal && len(modalBleedNodes) < 10 {
			modalBleedNodes = append(modalBleedNodes, report.ViolationNode{
				HTML:             step.HTML,
				Target:           []string{step.Selector},
				FriendlySelector: step.Selector,
				BoundingBox:      &report.BoundingBox{X: step.X, Y: step.Y, Width: step.Width, Height: step.Height},
			})
		}

		if trapNode != nil {
			break
		}
	}
	_ = tabwalk.ResetFocus(ctx, tw)

	finding := &Finding{}

	if trapNode != nil {
		v := singleViolation(
			"focus-order-trap",
			"Keyboard focus trap",
			"Tab key cycles back to a previously visited element within a short window instead of advancing through the page, trapping keyboard users.",
			report.SeverityCritical,
			"3e12e1", "focus-traps",
			[]report.ViolationNode{*trapNode},
		)
		finding.Violations = append(finding.Violations, v)
		finding.ActionItems = append(finding.ActionItems, actionItemFor(pageURL, v, "Keyboard", "2.1.2", report.WCAGLevelA))
	}

	if len(jumpNodes) > 0 {
		v := singleViolation(
			"focus-order-visual-jump",
			"Focus jumps upward unexpectedly",
			"Keyboard focus moved to an element positioned well above the previously focused element, breaking the visual reading order.",
			report.SeveritySerious,
			"24afc2", "focus-order-sensible",
			jumpNodes,
		)
		finding.Violations = append(finding.Violations, v)
		finding.ActionItems = append(finding.ActionItems, actionItemFor(pageURL, v, "Keyboard", "2.4.3", report.WCAGLevelA))
	}

	if len(modalBleedNodes) > 0 {
		v := singleViolation(
			"focus-order-modal-bleed",
			"Focus escapes open modal",
			"While a modal dialog is open, keyboard focus moved to an element outside the modal.",
			report.SeverityCritical,
			"9eedfc", "focus-appropriate",
			modalBleedNodes,
		)
		finding.Violations = append(finding.Violations, v)
		finding.ActionItems = append(finding.ActionItems, actionItemFor(pageURL, v, "Keyboard", "2.4.3", report.WCAGLevelA))
	}

	return finding, nil
}
