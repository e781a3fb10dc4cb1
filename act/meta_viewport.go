package act

import (
	"context"
	"strconv"
	"strings"

	"github.com/a11yscan/auditor/report"
)

// MetaViewportProbe checks that the viewport meta tag doesn't disable user
// zoom, which axe-core's meta-viewport rule only partially covers.
type MetaViewportProbe struct{}

func (MetaViewportProbe) ID() string { return "meta-viewport" }

const metaViewportScript = `() => {
	const el = document.querySelector('meta[name="viewport"]');
	if (!el) return {found: false};
	return {found: true, content: el.getAttribute('content') || ''};
}`

type metaViewportResult struct {
	Found   bool   `json:"found"`
	Content string `json:"content"`
}

func (MetaViewportProbe) Run(ctx context.Context, page Evaluator, pageURL string) (*Finding, error) {
	var result metaViewportResult
	if err := page.EvalJSON(ctx, metaViewportScript, &result); err != nil {
		return nil, err
	}
	if !result.Found {
		return &Finding{}, nil
	}

	params := parseViewportContent(result.Content)

	userScalableDisabled := false
	if v, ok := params["user-scalable"]; ok {
		v = strings.TrimSpace(strings.ToLower(v))
		if v == "no" || v == "0" {
			userScalableDisabled = true
		}
	}

	maxScaleTooLow := false
	if v, ok := params["maximum-scale"]; ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && f < 2 {
			maxScaleTooLow = true
		}
	}

	finding := &Finding{}
	if userScalableDisabled || maxScaleTooLow {
		v := singleViolation("meta-viewport-zoom-disabled", "Viewport disables or restricts pinch zoom",
			"The viewport meta tag sets user-scalable=no or a maximum-scale below 2, preventing low-vision users from zooming the page.",
			report.SeveritySerious, "b4f0c3", "meta-viewport-scale", nil)
		finding.Violations = append(finding.Violations, v)
		finding.ActionItems = append(finding.ActionItems, actionItemFor(pageURL, v, "Zoom & Reflow", "1.4.4", report.WCAGLevelAA))
	}

	return finding, nil
}

func parseViewportContent(content string) map[string]string {
	params := map[string]string{}
	for _, pair := range strings.Split(content, ",") {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(strings.ToLower(parts[0]))
		params[key] = parts[1]
	}
	return params
}
