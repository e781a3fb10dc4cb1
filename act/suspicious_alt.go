package act

import (
	"context"
	"regexp"
	"strings"

	"github.com/a11yscan/auditor/report"
)

// SuspiciousAltProbe flags alt text that technically exists but fails to
// describe the image: filenames, boilerplate placeholders, redundant
// "image of" prefixes, and text too short to be meaningful.
type SuspiciousAltProbe struct{}

func (SuspiciousAltProbe) ID() string { return "suspicious-alt" }

const readImageAltsScript = `() => {
	return Array.from(document.querySelectorAll('img[alt]')).map((img, i) => {
		const r = img.getBoundingClientRect();
		return {
			alt: img.getAttribute('alt') || '',
			html: img.outerHTML.slice(0, 300),
			selector: img.id ? '#' + img.id : 'img:nth-of-type(' + (i + 1) + ')',
			x: r.x, y: r.y, width: r.width, height: r.height,
		};
	});
}`

type imageAlt struct {
	Alt      string  `json:"alt"`
	HTML     string  `json:"html"`
	Selector string  `json:"selector"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

var (
	filenameAltRe  = regexp.MustCompile(`(?i)\.(jpe?g|png|gif|webp|svg|bmp)(\?.*)?$`)
	placeholderAlt = map[string]bool{
		"image": true, "photo": true, "picture": true, "graphic": true,
		"img": true, "untitled": true, "spacer": true, "placeholder": true,
	}
	redundantPrefixRe = regexp.MustCompile(`(?i)^(image of|photo of|picture of|graphic of|obrázek)\s+`)
)

var suspiciousAltTitles = map[report.SuspiciousAltCategory]string{
	report.SuspiciousAltFilename:    "Alt text is a filename",
	report.SuspiciousAltPlaceholder: "Alt text is a generic placeholder",
	report.SuspiciousAltRedundant:   "Alt text has a redundant prefix",
	report.SuspiciousAltTooShort:    "Alt text is too short to be meaningful",
}

func (SuspiciousAltProbe) Run(ctx context.Context, page Evaluator, pageURL string) (*Finding, error) {
	var images []imageAlt
	if err := page.EvalJSON(ctx, readImageAltsScript, &images); err != nil {
		return nil, err
	}

	finding := &Finding{}
	for _, img := range images {
		alt := strings.TrimSpace(img.Alt)
		if alt == "" {
			continue // empty alt is a deliberate decorative marker, not this probe's concern
		}
		category, ok := classifySuspiciousAlt(alt)
		if !ok {
			continue
		}

		node := report.ViolationNode{
			HTML:             img.HTML,
			Target:           []string{img.Selector},
			FriendlySelector: img.Selector,
			BoundingBox:      &report.BoundingBox{X: img.X, Y: img.Y, Width: img.Width, Height: img.Height},
		}
		v := report.Violation{
			RuleID:                "suspicious-alt-text",
			Title:                 suspiciousAltTitles[category],
			Description:           "An image's alt attribute is a filename, generic placeholder, or redundant phrase rather than a description of the image's content or purpose.",
			Severity:              report.SeverityModerate,
			Count:                 1,
			Nodes:                 []report.ViolationNode{node},
			ACTRuleIDs:            []string{"23a2a8"},
			ACTRuleURLs:           []string{"https://act-rules.github.io/rules/23a2a8"},
			SuspiciousAltCategory: category,
		}
		finding.Violations = append(finding.Violations, v)
		finding.ActionItems = append(finding.ActionItems, actionItemFor(pageURL, v, "Images", "1.1.1", report.WCAGLevelA))
	}

	return finding, nil
}

// classifySuspiciousAlt tests alt against the pattern lists in priority
// order and reports which category matched, if any.
func classifySuspiciousAlt(alt string) (report.SuspiciousAltCategory, bool) {
	if filenameAltRe.MatchString(alt) {
		return report.SuspiciousAltFilename, true
	}
	if placeholderAlt[strings.ToLower(alt)] {
		return report.SuspiciousAltPlaceholder, true
	}
	if redundantPrefixRe.MatchString(alt) {
		return report.SuspiciousAltRedundant, true
	}
	if len([]rune(alt)) <= 2 {
		return report.SuspiciousAltTooShort, true
	}
	return "", false
}
