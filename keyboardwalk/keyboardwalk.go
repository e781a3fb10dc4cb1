// Package keyboardwalk implements the Keyboard-Walk Analyzer: a bounded Tab
// traversal that surfaces focus-lost, offscreen-focus, no-visible-focus, and
// focus-loop issues independently of the ACT focus-order probe, which shares
// the underlying step logic via internal/tabwalk but reports a different,
// narrower set of findings.
package keyboardwalk

import (
	"context"

	"github.com/a11yscan/auditor/internal/tabwalk"
	"github.com/a11yscan/auditor/report"
)

// maxSteps bounds the walk; 60 presses is enough to characterize a page's
// tab order without running forever on content-heavy pages.
const maxSteps = 60

// loopWindow is how many Tab presses back a selector can be revisited from
// before the revisit counts as a focus loop rather than the tab order
// simply wrapping around at the end of the page.
const loopWindow = 10

// Walk presses Tab repeatedly, up to maxSteps times, and records issues in
// the resulting focus path.
func Walk(ctx context.Context, page tabwalk.Page) (*report.KeyboardReport, error) {
	result := &report.KeyboardReport{}

	lastVisit := map[string]int{}
	completed := 0

	steps := 0
	for ; steps < maxSteps; steps++ {
		s, err := tabwalk.ReadStep(ctx, page)
		if err != nil {
			return nil, err
		}

		if !s.HasActive {
			if steps == 0 {
				result.Issues = append(result.Issues, report.KeyboardIssue{
					Type:        report.KeyboardIssueNoFocusables,
					Step:        0,
					Description: "No focusable elements were found on the page.",
				})
				result.Steps = 0
				return result, nil
			}
			result.Issues = append(result.Issues, report.KeyboardIssue{
				Type:           report.KeyboardIssueFocusLost,
				Step:           steps,
				Description:    "Keyboard focus was lost (moved to the document body or nowhere) before reaching the end of the tab order.",
				WCAGReference:  "2.4.3",
				Recommendation: "Ensure every interactive element remains part of the natural tab order and that none programmatically blurs focus without moving it elsewhere.",
			})
			break
		}

		// A cycle shorter than loopWindow can't be a legitimate full-page
		// tab-order wrap — the same selector is recurring faster than the
		// page's real tab order could bring it back around.
		looped := false
		if j, seen := lastVisit[s.Selector]; seen && steps-j < loopWindow {
			looped = true
		}
		lastVisit[s.Selector] = steps

		if looped {
			result.Issues = append(result.Issues, report.KeyboardIssue{
				Type:           report.KeyboardIssueFocusLoop,
				Step:           steps,
				Selector:       s.Selector,
				HTML:           s.HTML,
				Description:    "A selector was revisited within a short Tab window, indicating a focus loop.",
				WCAGReference:  "2.1.2",
				Recommendation: "Check for a keyboard trap: the element may be re-grabbing focus via a focus event handler.",
			})
			break
		}

		if offscreen(s.X, s.Y, s.Width, s.Height, s.ViewportWidth, s.ViewportHeight) {
			result.Issues = append(result.Issues, report.KeyboardIssue{
				Type:           report.KeyboardIssueOffscreenFocus,
				Step:           steps,
				Selector:       s.Selector,
				HTML:           s.HTML,
				Description:    "A focused element is positioned off-screen or has zero size, so sighted keyboard users can't see what's focused.",
				WCAGReference:  "2.4.7",
				Recommendation: "Either remove the element from the tab order (tabindex=\"-1\") or make it visible when focused.",
			})
		} else if s.OutlineAbsent {
			result.Issues = append(result.Issues, report.KeyboardIssue{
				Type:           report.KeyboardIssueNoVisibleFocus,
				Step:           steps,
				Selector:       s.Selector,
				HTML:           s.HTML,
				Description:    "A focused element has no visible focus indicator (no outline or equivalent styling change).",
				WCAGReference:  "2.4.7",
				Recommendation: "Add a visible :focus or :focus-visible style; don't rely on the browser default which some stylesheets strip.",
			})
		}

		completed++
	}

	_ = tabwalk.ResetFocus(ctx, page)

	result.Steps = completed
	return result, nil
}

// offscreen reports whether an element's rect has no area or lies entirely
// outside the viewport bounds.
func offscreen(x, y, w, h, viewportWidth, viewportHeight float64) bool {
	if w == 0 || h == 0 {
		return true
	}
	if x+w <= 0 || y+h <= 0 {
		return true
	}
	if viewportWidth > 0 && x >= viewportWidth {
		return true
	}
	if viewportHeight > 0 && y >= viewportHeight {
		return true
	}
	return false
}
