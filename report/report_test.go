package report

import (
	"encoding/json"
	"testing"
)

func TestAuditReportRoundTrip(t *testing.T) {
	original := AuditReport{
		URL:   "https://example.com/",
		Score: 95,
		Meta:  Meta{BrowserVersion: "124.0", EngineVersion: "4.8.4"},
		Violations: Buckets{
			Critical: []Violation{{
				RuleID:   "image-alt",
				Title:    "Images must have alt text",
				Severity: SeverityCritical,
				Count:    1,
				Nodes:    []ViolationNode{{HTML: "<img src=logo.png>"}},
			}},
		},
		Stats: Stats{TotalViolations: 1, CriticalCount: 1},
	}

	data, err := json.Marshal(&original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded AuditReport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded.URL != original.URL || decoded.Score != original.Score {
		t.Fatalf("round trip mismatch: got %+v, want %+v", decoded, original)
	}
	if len(decoded.Violations.Critical) != 1 || decoded.Violations.Critical[0].RuleID != "image-alt" {
		t.Fatalf("violations did not round trip: %+v", decoded.Violations)
	}
}

func TestAuditReportUnmarshalFlatViolations(t *testing.T) {
	flat := `{
		"url": "https://example.com/",
		"score": 80,
		"meta": {"browserVersion":"124","engineVersion":"4.8"},
		"violations": [
			{"ruleId":"image-alt","severity":"critical","count":1,"nodes":[{"html":"<img>"}]},
			{"ruleId":"link-name","severity":"serious","count":2,"nodes":[{"html":"<a>"},{"html":"<a>"}]}
		],
		"stats": {"totalViolations":3,"criticalCount":1},
		"humanReadable": {"actionItems":[],"topIssues":[]}
	}`

	var r AuditReport
	if err := json.Unmarshal([]byte(flat), &r); err != nil {
		t.Fatalf("unmarshal flat violations: %v", err)
	}

	if len(r.Violations.Critical) != 1 {
		t.Fatalf("expected 1 critical violation, got %d", len(r.Violations.Critical))
	}
	if len(r.Violations.Serious) != 1 {
		t.Fatalf("expected 1 serious violation, got %d", len(r.Violations.Serious))
	}
}

func TestHeadingLevelEitherShape(t *testing.T) {
	cases := []string{`{"level":2,"text":"x"}`, `{"level":"H2","text":"x"}`, `{"level":"h2","text":"x"}`}
	for _, c := range cases {
		var h Heading
		if err := json.Unmarshal([]byte(c), &h); err != nil {
			t.Fatalf("unmarshal %q: %v", c, err)
		}
		if h.Level != 2 {
			t.Fatalf("unmarshal %q: got level %d, want 2", c, h.Level)
		}
	}
}

func TestPerformanceFlatShape(t *testing.T) {
	flat := `{"lcp": 1200, "lcpRating": "good", "cls": 0.05, "clsRating": "good"}`
	var p Performance
	if err := json.Unmarshal([]byte(flat), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.LCP == nil || p.LCP.Value != 1200 || p.LCP.Rating != RatingGood {
		t.Fatalf("lcp not decoded: %+v", p.LCP)
	}
	if p.CLS == nil || p.CLS.Value != 0.05 {
		t.Fatalf("cls not decoded: %+v", p.CLS)
	}
}
