package act

import (
	"context"
	"time"

	"github.com/a11yscan/auditor/report"
)

// AutoplayMediaProbe checks for audio or video that plays automatically,
// unmuted, with no visible control to pause it. Headless browsers routinely
// suppress unmuted autoplay as a policy matter — unless some element is
// observed playing in both checks, the probe degrades to a no-op rather
// than report a violation it cannot confirm (see design notes on this
// decision).
type AutoplayMediaProbe struct{}

func (AutoplayMediaProbe) ID() string { return "autoplay-media" }

const readMediaStateScript = `() => {
	const els = Array.from(document.querySelectorAll('audio, video'));
	return els.map((el, i) => {
		el.setAttribute('data-auditor-media-id', String(i));
		const r = el.getBoundingClientRect();
		const controlsVisible = el.hasAttribute('controls');
		return {
			id: i,
			playing: !el.paused && !el.ended && el.currentTime > 0,
			muted: el.muted || el.volume === 0,
			controlsVisible,
			html: el.outerHTML.slice(0, 300),
			selector: el.id ? '#' + el.id : '[data-auditor-media-id="' + i + '"]',
			x: r.x, y: r.y, width: r.width, height: r.height,
		};
	});
}`

type mediaState struct {
	ID              int     `json:"id"`
	Playing         bool    `json:"playing"`
	Muted           bool    `json:"muted"`
	ControlsVisible bool    `json:"controlsVisible"`
	HTML            string  `json:"html"`
	Selector        string  `json:"selector"`
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
}

func (AutoplayMediaProbe) Run(ctx context.Context, page Evaluator, pageURL string) (*Finding, error) {
	select {
	case <-time.After(2 * time.Second):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	var first []mediaState
	if err := page.EvalJSON(ctx, readMediaStateScript, &first); err != nil {
		return nil, err
	}
	if len(first) == 0 {
		return &Finding{}, nil
	}

	select {
	case <-time.After(3500 * time.Millisecond):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	var second []mediaState
	if err := page.EvalJSON(ctx, readMediaStateScript, &second); err != nil {
		return nil, err
	}

	byID := map[int]mediaState{}
	for _, m := range second {
		byID[m.ID] = m
	}

	var confirmedPlaying bool
	var nodes []report.ViolationNode
	for _, m1 := range first {
		m2, ok := byID[m1.ID]
		if !ok {
			continue
		}
		if m1.Playing && m2.Playing {
			confirmedPlaying = true
			if !m2.Muted && !m2.ControlsVisible {
				nodes = append(nodes, report.ViolationNode{
					HTML:             m2.HTML,
					Target:           []string{m2.Selector},
					FriendlySelector: m2.Selector,
					BoundingBox:      &report.BoundingBox{X: m2.X, Y: m2.Y, Width: m2.Width, Height: m2.Height},
				})
			}
		}
	}

	finding := &Finding{}
	if !confirmedPlaying {
		// Either nothing autoplays, or the browser's autoplay policy
		// suppressed it — can't distinguish the two headlessly, so skip.
		return finding, nil
	}

	if len(nodes) > 0 {
		v := singleViolation("autoplay-media-no-control", "Unmuted media autoplays with no pause control",
			"Audio or video starts playing automatically, unmuted, and exposes no visible control to pause or stop it within three seconds.",
			report.SeveritySerious, "80f0bf", "audio-control", nodes)
		finding.Violations = append(finding.Violations, v)
		finding.ActionItems = append(finding.ActionItems, actionItemFor(pageURL, v, "Motion & Timing", "1.4.2", report.WCAGLevelA))
	}

	return finding, nil
}
