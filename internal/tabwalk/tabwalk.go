// Package tabwalk implements the Tab-traversal stepping logic shared by the
// keyboard-walk analyzer and the focus-order ACT probe: both press Tab
// repeatedly and inspect the resulting active element, differing only in
// step budget and which issues they report.
package tabwalk

import (
	"context"
	"time"
)

// Page is the capability a Tab walk needs from the browser session.
type Page interface {
	Eval(ctx context.Context, script string, args ...interface{}) (interface{}, error)
	EvalJSON(ctx context.Context, script string, out interface{}, args ...interface{}) error
	PressTab(ctx context.Context) error
}

// Step is one Tab press's observed state.
type Step struct {
	HasActive      bool    `json:"hasActive"`
	Selector       string  `json:"selector"`
	HTML           string  `json:"html"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	OutlineAbsent  bool    `json:"outlineAbsent"`
	ModalOpen      bool    `json:"modalOpen"`
	ActiveInModal  bool    `json:"activeInModal"`
	ViewportWidth  float64 `json:"viewportWidth"`
	ViewportHeight float64 `json:"viewportHeight"`
}

// readStateScript reads document.activeElement (traversing shadow roots),
// its bounding rect and computed outline, a stable selector, and whether an
// open aria-modal dialog contains it.
const readStateScript = `() => {
	function deepActiveElement() {
		let el = document.activeElement;
		while (el && el.shadowRoot && el.shadowRoot.activeElement) {
			el = el.shadowRoot.activeElement;
		}
		return el;
	}
	function selectorFor(el) {
		const parts = [];
		let node = el;
		while (node && node.nodeType === 1 && node !== document.body) {
			if (node.id) {
				parts.unshift('#' + node.id);
				break;
			}
			let idx = 1;
			let sib = node.previousElementSibling;
			while (sib) {
				if (sib.tagName === node.tagName) idx++;
				sib = sib.previousElementSibling;
			}
			parts.unshift(node.tagName.toLowerCase() + ':nth-of-type(' + idx + ')');
			node = node.parentElement;
		}
		return parts.join(' > ');
	}
	function outlineAbsent(el) {
		const cs = window.getComputedStyle(el);
		if (cs.outlineStyle === 'none') return true;
		if (cs.outlineWidth === '0px') return true;
		if (cs.outlineColor === 'transparent') return true;
		return false;
	}

	const el = deepActiveElement();
	if (!el || el === document.body) {
		return {hasActive: false};
	}

	const r = el.getBoundingClientRect();
	const modal = Array.from(document.querySelectorAll('[aria-modal="true"]')).find(m => {
		const s = window.getComputedStyle(m);
		return s.display !== 'none' && s.visibility !== 'hidden';
	});

	return {
		hasActive: true,
		selector: selectorFor(el),
		html: el.outerHTML ? el.outerHTML.slice(0, 300) : '',
		x: r.x, y: r.y, width: r.width, height: r.height,
		outlineAbsent: outlineAbsent(el),
		modalOpen: !!modal,
		activeInModal: !!modal && modal.contains(el),
		viewportWidth: window.innerWidth,
		viewportHeight: window.innerHeight,
	};
}`

// ReadStep presses Tab once and returns the resulting state.
func ReadStep(ctx context.Context, page Page) (Step, error) {
	if err := page.PressTab(ctx); err != nil {
		return Step{}, err
	}
	time.Sleep(40 * time.Millisecond)

	var step Step
	if err := page.EvalJSON(ctx, readStateScript, &step); err != nil {
		return Step{}, err
	}
	return step, nil
}

// ResetFocus blurs any active element and clamps focus to document body.
func ResetFocus(ctx context.Context, page Page) error {
	_, err := page.Eval(ctx, `() => { if (document.activeElement) document.activeElement.blur(); document.body.tabIndex = -1; document.body.focus(); }`)
	return err
}
