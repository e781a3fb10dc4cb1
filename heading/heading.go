// Package heading extracts a page's heading structure and flags the
// heuristic problems that make it hard to navigate by heading (screen
// reader users routinely jump page-to-page using h1-h6 alone).
package heading

import (
	"context"
	"strings"

	"github.com/a11yscan/auditor/report"
)

// Evaluator is the capability Extract needs.
type Evaluator interface {
	EvalJSON(ctx context.Context, fn string, out interface{}, args ...interface{}) error
}

const extractHeadingsScript = `() => {
	return Array.from(document.querySelectorAll('h1, h2, h3, h4, h5, h6')).map(h => {
		let selector;
		if (h.id) {
			selector = '#' + h.id;
		} else {
			const cls = h.className && typeof h.className === 'string' ? '.' + h.className.trim().split(/\s+/)[0] : '';
			selector = h.tagName.toLowerCase() + cls;
		}
		return {
			level: parseInt(h.tagName.slice(1), 10),
			text: (h.textContent || '').trim(),
			selector,
		};
	});
}`

var genericHeadings = map[string]bool{
	"click here": true, "more": true, "read more": true, "learn more": true,
	"untitled": true, "heading": true, "zde": true, "více": true,
}

// Extract walks the DOM's headings and runs every structural check in
// order against the resulting list.
func Extract(ctx context.Context, page Evaluator) (*report.HeadingStructure, error) {
	var headings []report.Heading
	if err := page.EvalJSON(ctx, extractHeadingsScript, &headings); err != nil {
		return nil, err
	}

	structure := &report.HeadingStructure{Headings: headings}

	if len(headings) == 0 {
		structure.Issues = append(structure.Issues, report.HeadingIssue{Type: report.HeadingIssueMissingH1})
		return structure, nil
	}

	h1Count := 0
	for _, h := range headings {
		if h.Level == 1 {
			h1Count++
		}
	}
	if h1Count == 0 {
		structure.Issues = append(structure.Issues, report.HeadingIssue{Type: report.HeadingIssueMissingH1})
	} else if h1Count > 1 {
		var dupes []report.Heading
		for _, h := range headings {
			if h.Level == 1 {
				dupes = append(dupes, h)
			}
		}
		structure.Issues = append(structure.Issues, report.HeadingIssue{Type: report.HeadingIssueMultipleH1, Headings: dupes})
	}

	if headings[0].Level != 1 {
		structure.Issues = append(structure.Issues, report.HeadingIssue{Type: report.HeadingIssueFirstNotH1, Headings: headings[:1]})
	}

	for i := 1; i < len(headings); i++ {
		if headings[i].Level > headings[i-1].Level+1 {
			structure.Issues = append(structure.Issues, report.HeadingIssue{
				Type:     report.HeadingIssueSkippedLevel,
				Headings: []report.Heading{headings[i-1], headings[i]},
			})
		}
	}

	seen := map[string][]report.Heading{}
	for _, h := range headings {
		text := strings.TrimSpace(h.Text)

		if text == "" {
			structure.Issues = append(structure.Issues, report.HeadingIssue{Type: report.HeadingIssueEmptyHeading, Headings: []report.Heading{h}})
			continue
		}

		lower := strings.ToLower(text)
		key := itoaLevel(h.Level) + ":" + lower
		seen[key] = append(seen[key], h)

		if genericHeadings[lower] {
			structure.Issues = append(structure.Issues, report.HeadingIssue{Type: report.HeadingIssueGenericHeading, Headings: []report.Heading{h}})
		}

		runeLen := len([]rune(text))
		if runeLen > 100 {
			structure.Issues = append(structure.Issues, report.HeadingIssue{Type: report.HeadingIssueVeryLong, Headings: []report.Heading{h}})
		} else if runeLen <= 2 {
			structure.Issues = append(structure.Issues, report.HeadingIssue{Type: report.HeadingIssueVeryShort, Headings: []report.Heading{h}})
		}
	}

	for _, group := range seen {
		if len(group) > 1 {
			structure.Issues = append(structure.Issues, report.HeadingIssue{Type: report.HeadingIssueDuplicateHeadings, Headings: group})
		}
	}

	return structure, nil
}

func itoaLevel(level int) string {
	return string(rune('0' + level))
}
