package act

import (
	"context"
	"strconv"
	"time"

	"github.com/a11yscan/auditor/report"
)

// CarouselAutoplayProbe finds carousel-like widgets and checks whether they
// advance on their own without an exposed pause control.
type CarouselAutoplayProbe struct{}

func (CarouselAutoplayProbe) ID() string { return "carousel-autoplay" }

const findCarouselsScript = `() => {
	const sel = '[role="region"][aria-roledescription="carousel"], [class*="carousel" i], [class*="slider" i], [data-carousel], [data-slider]';
	const els = Array.from(document.querySelectorAll(sel));
	return els.slice(0, 5).map((el, i) => {
		el.setAttribute('data-auditor-carousel-id', String(i));
		const pauseSel = 'button, [role="button"]';
		const pausePatterns = /pause|stop|zastavit/i;
		const hasPause = Array.from(el.querySelectorAll(pauseSel)).some(b =>
			pausePatterns.test(b.textContent || '') || pausePatterns.test(b.getAttribute('aria-label') || ''));
		const r = el.getBoundingClientRect();
		return {
			id: i,
			hasPause,
			html: el.outerHTML.slice(0, 300),
			innerHTML: el.innerHTML,
			selector: el.id ? '#' + el.id : '[data-auditor-carousel-id="' + i + '"]',
			x: r.x, y: r.y, width: r.width, height: r.height,
		};
	});
}`

const rereadCarouselScript = `() => {
	const els = document.querySelectorAll('[data-auditor-carousel-id]');
	const out = {};
	els.forEach(el => { out[el.getAttribute('data-auditor-carousel-id')] = el.innerHTML; });
	return out;
}`

type carouselInfo struct {
	ID        int     `json:"id"`
	HasPause  bool    `json:"hasPause"`
	HTML      string  `json:"html"`
	InnerHTML string  `json:"innerHTML"`
	Selector  string  `json:"selector"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
}

func (CarouselAutoplayProbe) Run(ctx context.Context, page Evaluator, pageURL string) (*Finding, error) {
	var before []carouselInfo
	if err := page.EvalJSON(ctx, findCarouselsScript, &before); err != nil {
		return nil, err
	}
	if len(before) == 0 {
		return &Finding{}, nil
	}

	select {
	case <-time.After(4 * time.Second):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	var after map[string]string
	if err := page.EvalJSON(ctx, rereadCarouselScript, &after); err != nil {
		return nil, err
	}

	finding := &Finding{}
	var nodes []report.ViolationNode
	for _, c := range before {
		if c.HasPause {
			continue
		}
		later, ok := after[strconv.Itoa(c.ID)]
		if ok && later != c.InnerHTML {
			nodes = append(nodes, report.ViolationNode{
				HTML:             c.HTML,
				Target:           []string{c.Selector},
				FriendlySelector: c.Selector,
				BoundingBox:      &report.BoundingBox{X: c.X, Y: c.Y, Width: c.Width, Height: c.Height},
			})
		}
	}

	if len(nodes) > 0 {
		v := singleViolation("carousel-autoplay-no-pause", "Auto-advancing carousel has no pause control",
			"A carousel changed its content without user interaction within 4 seconds and exposes no control to pause it.",
			report.SeveritySerious, "3bcb5b", "time-limits-pause", nodes)
		finding.Violations = append(finding.Violations, v)
		finding.ActionItems = append(finding.ActionItems, actionItemFor(pageURL, v, "Motion & Timing", "2.2.2", report.WCAGLevelA))
	}

	return finding, nil
}
