package act

import (
	"context"
	"fmt"
	"testing"

	"github.com/a11yscan/auditor/internal/tabwalk"
)

// fakeTabPage feeds a fixed sequence of tabwalk.Step values to ReadStep,
// then reports no active element once exhausted.
type fakeTabPage struct {
	steps []tabwalk.Step
	i     int
}

func (f *fakeTabPage) PressTab(ctx context.Context) error { return nil }

func (f *fakeTabPage) Eval(ctx context.Context, script string, args ...interface{}) (interface{}, error) {
	return nil, nil
}

func (f *fakeTabPage) EvalJSON(ctx context.Context, script string, out interface{}, args ...interface{}) error {
	s, ok := out.(*tabwalk.Step)
	if !ok {
		return fmt.Errorf("unexpected out type %T", out)
	}
	if f.i >= len(f.steps) {
		*s = tabwalk.Step{HasActive: false}
		return nil
	}
	*s = f.steps[f.i]
	f.i++
	return nil
}

func baseStep(selector string, y float64) tabwalk.Step {
	return tabwalk.Step{
		HasActive:      true,
		Selector:       selector,
		Width:          50,
		Height:         20,
		Y:              y,
		ViewportWidth:  1280,
		ViewportHeight: 720,
	}
}

func TestFocusOrderProbeDetectsShortCycleTrap(t *testing.T) {
	page := &fakeTabPage{steps: []tabwalk.Step{
		baseStep("btn1", 100),
		baseStep("btn2", 100),
		baseStep("btn1", 100),
	}}

	finding, err := FocusOrderProbe{}.Run(context.Background(), page, "https://example.com/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, v := range finding.Violations {
		if v.RuleID == "focus-order-trap" {
			found = true
			if len(v.Nodes) != 1 || v.Nodes[0].FriendlySelector != "btn1" {
				t.Fatalf("expected trap node selector btn1, got %+v", v.Nodes)
			}
		}
	}
	if !found {
		t.Fatal("expected a focus-order-trap violation for btn1->btn2->btn1")
	}
}

func TestFocusOrderProbeDetectsVisualJump(t *testing.T) {
	page := &fakeTabPage{steps: []tabwalk.Step{
		baseStep("a", 500),
		baseStep("b", 50), // jumps 450px upward
		baseStep("c", 520),
	}}

	finding, err := FocusOrderProbe{}.Run(context.Background(), page, "https://example.com/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, v := range finding.Violations {
		if v.RuleID == "focus-order-visual-jump" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a focus-order-visual-jump violation")
	}
}

func TestFocusOrderProbeNoFindingsOnCleanOrder(t *testing.T) {
	page := &fakeTabPage{steps: []tabwalk.Step{
		baseStep("a", 10),
		baseStep("b", 40),
		baseStep("c", 70),
	}}

	finding, err := FocusOrderProbe{}.Run(context.Background(), page, "https://example.com/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(finding.Violations) != 0 {
		t.Fatalf("expected no violations, got %+v", finding.Violations)
	}
}
