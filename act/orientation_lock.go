package act

import (
	"context"
	"math"

	"github.com/a11yscan/auditor/session"

	"github.com/a11yscan/auditor/report"
)

// OrientationLockProbe checks that content doesn't lock to a single display
// orientation via CSS transforms keyed to orientation media queries.
type OrientationLockProbe struct{}

func (OrientationLockProbe) ID() string { return "orientation-lock" }

// viewportSettable is satisfied by *session.Session; probes that need to
// resize the viewport assert to this narrower interface.
type viewportSettable interface {
	Evaluator
	SetViewport(ctx context.Context, vp session.Viewport) error
}

const readTransformAngleScript = `() => {
	const cs = window.getComputedStyle(document.documentElement);
	const t = cs.transform;
	if (!t || t === 'none') return {angle: 0};
	const m = t.match(/matrix\(([^)]+)\)/);
	if (!m) return {angle: 0};
	const parts = m[1].split(',').map(Number);
	const a = parts[0], b = parts[1];
	const angle = Math.atan2(b, a) * (180 / Math.PI);
	return {angle};
}`

type transformAngle struct {
	Angle float64 `json:"angle"`
}

func (OrientationLockProbe) Run(ctx context.Context, page Evaluator, pageURL string) (*Finding, error) {
	vs, ok := page.(viewportSettable)
	if !ok {
		return &Finding{}, nil
	}

	const portraitW, portraitH = 375, 812

	if err := vs.SetViewport(ctx, session.Viewport{Width: portraitW, Height: portraitH}); err != nil {
		return nil, err
	}
	var portrait transformAngle
	if err := vs.EvalJSON(ctx, readTransformAngleScript, &portrait); err != nil {
		_ = vs.SetViewport(ctx, session.Viewport{Width: portraitW, Height: portraitH})
		return nil, err
	}

	if err := vs.SetViewport(ctx, session.Viewport{Width: portraitH, Height: portraitW}); err != nil {
		return nil, err
	}
	var landscape transformAngle
	evalErr := vs.EvalJSON(ctx, readTransformAngleScript, &landscape)

	// Always restore a sane default viewport regardless of outcome.
	_ = vs.SetViewport(ctx, session.Viewport{Width: portraitW, Height: portraitH})

	if evalErr != nil {
		return nil, evalErr
	}

	finding := &Finding{}
	locked := math.Abs(landscape.Angle-portrait.Angle) > 45
	if locked {
		v := singleViolation("orientation-lock-detected", "Content locks to a single orientation",
			"The page applies a CSS transform that counter-rotates content when the device orientation changes, effectively locking the display to one orientation.",
			report.SeveritySerious, "b33eff", "orientation", nil)
		finding.Violations = append(finding.Violations, v)
		finding.ActionItems = append(finding.ActionItems, actionItemFor(pageURL, v, "Zoom & Reflow", "1.3.4", report.WCAGLevelAA))
	}

	return finding, nil
}
