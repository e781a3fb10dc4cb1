package act

import (
	"context"

	"github.com/a11yscan/auditor/report"
)

// SkipLinkProbe checks for a "skip to content" link among the page's first
// five links, and that its href fragment matches an element id or name on
// the page.
type SkipLinkProbe struct{}

func (SkipLinkProbe) ID() string { return "skip-link" }

const skipLinkScript = `() => {
	const patterns = /skip\s*(to)?\s*(the\s*)?(main\s*)?content|skip\s*navigation|přeskočit\s*na\s*obsah/i;
	const links = Array.from(document.querySelectorAll('a[href]'));
	for (const a of links.slice(0, 5)) {
		const text = (a.textContent || '').trim();
		if (patterns.test(text)) {
			const href = a.getAttribute('href') || '';
			let targetExists = false;
			if (href.startsWith('#') && href.length > 1) {
				targetExists = !!document.getElementById(href.slice(1)) ||
					!!document.getElementsByName(href.slice(1)).length;
			}
			const r = a.getBoundingClientRect();
			return {
				found: true,
				targetExists,
				html: a.outerHTML.slice(0, 300),
				selector: href ? 'a[href="' + href + '"]' : 'a',
				x: r.x, y: r.y, width: r.width, height: r.height,
			};
		}
	}
	return {found: false};
}`

type skipLinkResult struct {
	Found        bool    `json:"found"`
	TargetExists bool    `json:"targetExists"`
	HTML         string  `json:"html"`
	Selector     string  `json:"selector"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
}

func (SkipLinkProbe) Run(ctx context.Context, page Evaluator, pageURL string) (*Finding, error) {
	var result skipLinkResult
	if err := page.EvalJSON(ctx, skipLinkScript, &result); err != nil {
		return nil, err
	}

	finding := &Finding{}

	if !result.Found {
		v := singleViolation("skip-link-missing", "No skip-to-content link",
			"The page has no link near the start of the document allowing keyboard users to bypass repeated navigation.",
			report.SeverityModerate, "0ssw9k", "bypass-blocks", nil)
		finding.Violations = append(finding.Violations, v)
		finding.ActionItems = append(finding.ActionItems, actionItemFor(pageURL, v, "Keyboard", "2.4.1", report.WCAGLevelA))
		return finding, nil
	}

	if !result.TargetExists {
		node := report.ViolationNode{
			HTML:             result.HTML,
			Target:           []string{result.Selector},
			FriendlySelector: result.Selector,
			BoundingBox:      &report.BoundingBox{X: result.X, Y: result.Y, Width: result.Width, Height: result.Height},
		}
		v := singleViolation("skip-link-broken-target", "Skip link has no matching target",
			"A skip-to-content link's href does not match any element id on the page, so activating it does nothing.",
			report.SeverityModerate, "0ssw9k", "bypass-blocks", []report.ViolationNode{node})
		finding.Violations = append(finding.Violations, v)
		finding.ActionItems = append(finding.ActionItems, actionItemFor(pageURL, v, "Keyboard", "2.4.1", report.WCAGLevelA))
	}

	return finding, nil
}
