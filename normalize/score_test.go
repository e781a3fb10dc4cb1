package normalize

import (
	"testing"

	"github.com/a11yscan/auditor/report"
)

func TestScoreEmptyIsHundred(t *testing.T) {
	if got := Score(nil); got != 100 {
		t.Fatalf("got %d, want 100", got)
	}
}

func TestScoreClampsAtZero(t *testing.T) {
	violations := []report.Violation{{Severity: report.SeverityCritical, Count: 20}}
	if got := Score(violations); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}

func TestScoreImageAltExample(t *testing.T) {
	// one critical image-alt violation on one node.
	violations := []report.Violation{{Severity: report.SeverityCritical, Count: 1}}
	if got := Score(violations); got != 95 {
		t.Fatalf("got %d, want 95", got)
	}
}

func TestPriorityScoreUsesSqrtOccurrences(t *testing.T) {
	// 4 (critical) * 3 (A) * sqrt(4) = 24
	got := PriorityScore(report.SeverityCritical, report.WCAGLevelA, 4)
	if got != 24 {
		t.Fatalf("got %v, want 24", got)
	}
}

func TestPriorityScoreFloorsOccurrencesAtOne(t *testing.T) {
	got := PriorityScore(report.SeverityMinor, report.WCAGLevelAAA, 0)
	if got != 1 {
		t.Fatalf("got %v, want 1", got)
	}
}

func TestFingerprintEquality(t *testing.T) {
	a := Fingerprint("https://example.com/About", "Button#Go", "Button \"Go\"")
	b := Fingerprint("https://example.com/about", "button#go", "button \"go\"")
	if a != b {
		t.Fatalf("expected case-insensitive fingerprint equality: %q vs %q", a, b)
	}
}

func TestElementLabelPrefersAriaLabel(t *testing.T) {
	got := ElementLabel(`<button aria-label="Submit form">X</button>`)
	if got != `Button "Submit form"` {
		t.Fatalf("got %q", got)
	}
}

func TestElementLabelFallsBackToText(t *testing.T) {
	got := ElementLabel(`<a href="/">  Sign   in  </a>`)
	if got != `Link "Sign in"` {
		t.Fatalf("got %q", got)
	}
}
