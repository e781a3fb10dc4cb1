// Package perf collects Core Web Vitals and basic navigation timing for a
// page. LCP, CLS, INP, and TBT require an observer installed before the
// page starts rendering, so Prepare must run before
// Session.Navigate; FCP and TTFB are read from the Navigation Timing API
// after load, which is safe to do any time afterward.
package perf

import (
	"context"

	"github.com/a11yscan/auditor/report"
)

// Thresholds: value <= good is "good", <= needsImprovement is
// "needs-improvement", anything above is "poor".
var thresholds = map[string][2]float64{
	"lcp":  {2500, 4000},
	"cls":  {0.1, 0.25},
	"inp":  {200, 500},
	"tbt":  {200, 600},
	"fcp":  {1800, 3000},
	"ttfb": {800, 1800},
}

// Preloader is the capability Prepare needs: register a script to run
// before the next navigation's page scripts execute.
type Preloader interface {
	AddPreloadScript(ctx context.Context, fn string) (string, error)
	RemovePreloadScript(ctx context.Context, scriptID string) error
}

// Evaluator is the capability Collect needs: run a script after the page
// has loaded.
type Evaluator interface {
	EvalJSON(ctx context.Context, fn string, out interface{}, args ...interface{}) error
}

// observerScript installs PerformanceObservers that accumulate LCP, CLS,
// INP, and TBT onto window.__auditorPerf so Collect can read them after
// navigation completes.
const observerScript = `() => {
	window.__auditorPerf = {lcp: 0, cls: 0, inpCandidates: [], tbt: 0};

	try {
		new PerformanceObserver((list) => {
			const entries = list.getEntries();
			const last = entries[entries.length - 1];
			if (last) window.__auditorPerf.lcp = last.renderTime || last.loadTime || 0;
		}).observe({type: 'largest-contentful-paint', buffered: true});
	} catch (e) {}

	try {
		new PerformanceObserver((list) => {
			for (const entry of list.getEntries()) {
				if (!entry.hadRecentInput) {
					window.__auditorPerf.cls += entry.value;
				}
			}
		}).observe({type: 'layout-shift', buffered: true});
	} catch (e) {}

	try {
		new PerformanceObserver((list) => {
			for (const entry of list.getEntries()) {
				window.__auditorPerf.inpCandidates.push(entry.duration);
			}
		}).observe({type: 'event', buffered: true, durationThreshold: 16});
	} catch (e) {}

	try {
		new PerformanceObserver((list) => {
			for (const entry of list.getEntries()) {
				const blocking = entry.duration - 50;
				if (blocking > 0) window.__auditorPerf.tbt += blocking;
			}
		}).observe({type: 'longtask', buffered: true});
	} catch (e) {}
}`

// readScript reads the accumulated observer state plus navigation timing
// once the page has finished loading.
const readScript = `() => {
	const perf = window.__auditorPerf || {lcp: 0, cls: 0, inpCandidates: [], tbt: 0};
	const nav = performance.getEntriesByType('navigation')[0];
	const paint = performance.getEntriesByType('paint').find(p => p.name === 'first-contentful-paint');

	let inp = 0;
	if (perf.inpCandidates.length > 0) {
		const sorted = [...perf.inpCandidates].sort((a, b) => a - b);
		inp = sorted[Math.floor(sorted.length * 0.98)] || sorted[sorted.length - 1];
	}

	return {
		lcp: perf.lcp || 0,
		cls: perf.cls || 0,
		inp: inp,
		tbt: perf.tbt || 0,
		fcp: paint ? paint.startTime : 0,
		ttfb: nav ? nav.responseStart : 0,
		hasNav: !!nav,
	};
}`

type rawMetrics struct {
	LCP    float64 `json:"lcp"`
	CLS    float64 `json:"cls"`
	INP    float64 `json:"inp"`
	TBT    float64 `json:"tbt"`
	FCP    float64 `json:"fcp"`
	TTFB   float64 `json:"ttfb"`
	HasNav bool    `json:"hasNav"`
}

// Prepare installs the performance observers. Must be called before
// Session.Navigate for LCP/CLS/INP/TBT to be captured; returns a cleanup
// func that removes the preload script via RemovePreloadScript once the
// scan is done with this page.
func Prepare(ctx context.Context, page Preloader) (cleanup func(context.Context) error, err error) {
	id, err := page.AddPreloadScript(ctx, observerScript)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context) error {
		return page.RemovePreloadScript(ctx, id)
	}, nil
}

// Collect reads the accumulated metrics after the page has loaded and
// classifies each against its threshold.
func Collect(ctx context.Context, page Evaluator) (*report.Performance, error) {
	var raw rawMetrics
	if err := page.EvalJSON(ctx, readScript, &raw); err != nil {
		return nil, err
	}

	perf := &report.Performance{}
	if raw.LCP > 0 {
		perf.LCP = classify("lcp", raw.LCP)
	}
	perf.CLS = classify("cls", raw.CLS)
	if raw.INP > 0 {
		perf.INP = classify("inp", raw.INP)
	}
	perf.TBT = classify("tbt", raw.TBT)
	if raw.FCP > 0 {
		perf.FCP = classify("fcp", raw.FCP)
	}
	if raw.HasNav {
		perf.TTFB = classify("ttfb", raw.TTFB)
	}

	return perf, nil
}

func classify(metric string, value float64) *report.Metric {
	t := thresholds[metric]
	rating := report.RatingPoor
	switch {
	case value <= t[0]:
		rating = report.RatingGood
	case value <= t[1]:
		rating = report.RatingNeedsImprovement
	}
	return &report.Metric{Value: value, Rating: rating}
}
