package act

import (
	"context"

	"github.com/a11yscan/auditor/report"
)

// FormErrorsProbe checks that forms with required fields have a mechanism
// to surface validation errors that's programmatically associated with the
// field, not just visual.
type FormErrorsProbe struct{}

func (FormErrorsProbe) ID() string { return "form-errors" }

const formErrorsScript = `() => {
	const forms = Array.from(document.querySelectorAll('form'));
	const out = [];
	forms.forEach((form, fi) => {
		const required = Array.from(form.querySelectorAll('[required], [aria-required="true"]'));
		if (required.length === 0) return;
		required.forEach((field, i) => {
			const describedBy = field.getAttribute('aria-describedby');
			const hasDescribedBy = describedBy && describedBy.split(/\s+/).some(id => document.getElementById(id));
			const hasAriaInvalid = field.hasAttribute('aria-invalid');
			const r = field.getBoundingClientRect();
			if (!hasDescribedBy && !hasAriaInvalid) {
				out.push({
					html: field.outerHTML.slice(0, 300),
					selector: field.id ? '#' + field.id : 'form:nth-of-type(' + (fi + 1) + ') [required]:nth-of-type(' + (i + 1) + ')',
					x: r.x, y: r.y, width: r.width, height: r.height,
				});
			}
		});
	});
	return out;
}`

func (FormErrorsProbe) Run(ctx context.Context, page Evaluator, pageURL string) (*Finding, error) {
	var fields []struct {
		HTML     string  `json:"html"`
		Selector string  `json:"selector"`
		X        float64 `json:"x"`
		Y        float64 `json:"y"`
		Width    float64 `json:"width"`
		Height   float64 `json:"height"`
	}
	if err := page.EvalJSON(ctx, formErrorsScript, &fields); err != nil {
		return nil, err
	}

	finding := &Finding{}
	if len(fields) == 0 {
		return finding, nil
	}

	var nodes []report.ViolationNode
	for _, f := range fields {
		nodes = append(nodes, report.ViolationNode{
			HTML:             f.HTML,
			Target:           []string{f.Selector},
			FriendlySelector: f.Selector,
			BoundingBox:      &report.BoundingBox{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height},
		})
	}

	v := singleViolation("form-errors-not-associated", "Required field has no associated error mechanism",
		"A required form field has no aria-describedby pointing at an error message and no aria-invalid state, so validation feedback isn't exposed to assistive technology.",
		report.SeveritySerious, "afb423", "form-field-labelling", nodes)
	finding.Violations = append(finding.Violations, v)
	finding.ActionItems = append(finding.ActionItems, actionItemFor(pageURL, v, "Forms", "3.3.1", report.WCAGLevelA))

	return finding, nil
}
