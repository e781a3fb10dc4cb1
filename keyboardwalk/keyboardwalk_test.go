package keyboardwalk

import (
	"context"
	"fmt"
	"testing"

	"github.com/a11yscan/auditor/internal/tabwalk"
	"github.com/a11yscan/auditor/report"
)

// fakePage feeds a fixed sequence of tabwalk.Step values to ReadStep, then
// reports no active element once exhausted.
type fakePage struct {
	steps []tabwalk.Step
	i     int
}

func (f *fakePage) PressTab(ctx context.Context) error { return nil }

func (f *fakePage) Eval(ctx context.Context, script string, args ...interface{}) (interface{}, error) {
	return nil, nil
}

func (f *fakePage) EvalJSON(ctx context.Context, script string, out interface{}, args ...interface{}) error {
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

func baseStep(selector string) tabwalk.Step {
	return tabwalk.Step{
		HasActive:      true,
		Selector:       selector,
		Width:          50,
		Height:         20,
		ViewportWidth:  1280,
		ViewportHeight: 720,
	}
}

func TestWalkDetectsTwoElementLoop(t *testing.T) {
	page := &fakePage{steps: []tabwalk.Step{
		baseStep("btn1"),
		baseStep("btn2"),
		baseStep("btn1"),
	}}

	result, err := Walk(context.Background(), page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, issue := range result.Issues {
		if issue.Type == report.KeyboardIssueFocusLoop {
			found = true
			if issue.Selector != "btn1" {
				t.Fatalf("expected loop selector btn1, got %q", issue.Selector)
			}
		}
	}
	if !found {
		t.Fatal("expected a focus-loop issue for btn1->btn2->btn1")
	}
	if result.Steps != 2 {
		t.Fatalf("expected 2 completed steps before the loop broke the walk, got %d", result.Steps)
	}
}

func TestWalkCleanOrderHasNoLoop(t *testing.T) {
	page := &fakePage{steps: []tabwalk.Step{
		baseStep("a"),
		baseStep("b"),
		baseStep("c"),
	}}

	result, err := Walk(context.Background(), page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, issue := range result.Issues {
		if issue.Type == report.KeyboardIssueFocusLoop {
			t.Fatalf("unexpected focus-loop issue: %+v", issue)
		}
	}
}

func TestOffscreenZeroSize(t *testing.T) {
	if !offscreen(10, 10, 0, 0, 1280, 720) {
		t.Fatal("expected zero-size element to count as offscreen")
	}
}

func TestOffscreenNegativeCoordinates(t *testing.T) {
	if !offscreen(-5000, 10, 20, 20, 1280, 720) {
		t.Fatal("expected far-negative x to count as offscreen")
	}
}

func TestOffscreenPastRightEdge(t *testing.T) {
	if !offscreen(99999, 10, 20, 20, 1280, 720) {
		t.Fatal("expected element past the right edge to count as offscreen")
	}
}

func TestOffscreenPastBottomEdge(t *testing.T) {
	if !offscreen(10, 99999, 20, 20, 1280, 720) {
		t.Fatal("expected element past the bottom edge to count as offscreen")
	}
}

func TestOffscreenVisibleElement(t *testing.T) {
	if offscreen(100, 200, 50, 20, 1280, 720) {
		t.Fatal("expected normally positioned element to not count as offscreen")
	}
}

func TestOffscreenStraddlingLeftEdgeIsVisible(t *testing.T) {
	if offscreen(-10, 10, 50, 20, 1280, 720) {
		t.Fatal("expected an element straddling the left edge to still count as visible")
	}
}
