package act

import (
	"context"

	"github.com/a11yscan/auditor/report"
)

// LandmarksProbe checks for missing or duplicated top-level landmark
// regions that axe-core's per-element rules don't evaluate holistically.
type LandmarksProbe struct{}

func (LandmarksProbe) ID() string { return "landmarks" }

const landmarksScript = `() => {
	function count(sel) { return document.querySelectorAll(sel).length; }
	return {
		main: count('main, [role="main"]'),
		nav: count('nav, [role="navigation"]'),
		banner: count('header:not([role]):not(section header):not(article header), [role="banner"]'),
		contentinfo: count('footer:not([role]):not(section footer):not(article footer), [role="contentinfo"]'),
	};
}`

type landmarkCounts struct {
	Main        int `json:"main"`
	Nav         int `json:"nav"`
	Banner      int `json:"banner"`
	Contentinfo int `json:"contentinfo"`
}

func (LandmarksProbe) Run(ctx context.Context, page Evaluator, pageURL string) (*Finding, error) {
	var counts landmarkCounts
	if err := page.EvalJSON(ctx, landmarksScript, &counts); err != nil {
		return nil, err
	}

	finding := &Finding{}

	if counts.Main == 0 {
		v := singleViolation("landmarks-missing-main", "No main landmark",
			"The page has no <main> element or role=\"main\" region, making it hard for screen reader users to skip to the primary content.",
			report.SeverityModerate, "cae760", "region", nil)
		finding.Violations = append(finding.Violations, v)
		finding.ActionItems = append(finding.ActionItems, actionItemFor(pageURL, v, "Landmarks", "1.3.1", report.WCAGLevelA))
	} else if counts.Main > 1 {
		v := singleViolation("landmarks-duplicate-main", "Multiple main landmarks",
			"More than one <main> element or role=\"main\" region exists on the page; assistive technology can only recognize one.",
			report.SeverityModerate, "cae760", "region", nil)
		finding.Violations = append(finding.Violations, v)
		finding.ActionItems = append(finding.ActionItems, actionItemFor(pageURL, v, "Landmarks", "1.3.1", report.WCAGLevelA))
	}

	if counts.Nav == 0 {
		v := singleViolation("landmarks-missing-nav", "No navigation landmark",
			"The page has no <nav> element or role=\"navigation\" region.",
			report.SeverityMinor, "cae760", "region", nil)
		finding.Violations = append(finding.Violations, v)
		finding.ActionItems = append(finding.ActionItems, actionItemFor(pageURL, v, "Landmarks", "1.3.1", report.WCAGLevelA))
	}

	if counts.Banner == 0 {
		v := singleViolation("landmarks-missing-banner", "No banner landmark",
			"The page has no top-level <header> element or role=\"banner\" region.",
			report.SeverityMinor, "cae760", "region", nil)
		finding.Violations = append(finding.Violations, v)
		finding.ActionItems = append(finding.ActionItems, actionItemFor(pageURL, v, "Landmarks", "1.3.1", report.WCAGLevelA))
	}

	if counts.Contentinfo == 0 {
		v := singleViolation("landmarks-missing-contentinfo", "No contentinfo landmark",
			"The page has no top-level <footer> element or role=\"contentinfo\" region.",
			report.SeverityMinor, "cae760", "region", nil)
		finding.Violations = append(finding.Violations, v)
		finding.ActionItems = append(finding.ActionItems, actionItemFor(pageURL, v, "Landmarks", "1.3.1", report.WCAGLevelA))
	}

	return finding, nil
}
