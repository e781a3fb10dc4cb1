// Package orchestrator drives a single page through the scan's fixed phase
// sequence and assembles the resulting AuditReport. Each phase either must
// succeed (phases 1-3 and the rules-engine pass) or is wrapped so a failure
// logs a warning and leaves its field absent rather than aborting the scan.
package orchestrator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/a11yscan/auditor/act"
	"github.com/a11yscan/auditor/engine"
	"github.com/a11yscan/auditor/heading"
	"github.com/a11yscan/auditor/keyboardwalk"
	"github.com/a11yscan/auditor/linkcheck"
	"github.com/a11yscan/auditor/normalize"
	"github.com/a11yscan/auditor/perf"
	"github.com/a11yscan/auditor/report"
	"github.com/a11yscan/auditor/session"
)

// nonHTMLExtensions are rejected up front as unscannable.
var nonHTMLExtensions = map[string]bool{
	".xml": true, ".pdf": true, ".jpg": true, ".jpeg": true, ".png": true,
	".gif": true, ".svg": true, ".zip": true, ".mp4": true, ".mp3": true,
	".css": true, ".js": true, ".json": true, ".woff": true, ".woff2": true,
}

// UnscannableURLError is returned when the target URL isn't a scannable
// HTML document or isn't absolute HTTP/HTTPS.
type UnscannableURLError struct {
	URL    string
	Reason string
}

func (e *UnscannableURLError) Error() string {
	return fmt.Sprintf("cannot scan %q: %s", e.URL, e.Reason)
}

// Options configures a single-page scan.
type Options struct {
	Device          session.DeviceProfile
	SkipHeavyweight bool
	Timeout         time.Duration
	Logger          *slog.Logger
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Scan drives pageURL through the full phase sequence on an already-open
// session and returns the resulting report.
func Scan(ctx context.Context, sess *session.Session, pageURL string, opts Options) (*report.AuditReport, error) {
	if err := validateURL(pageURL); err != nil {
		return nil, err
	}

	logger := opts.logger()

	// Phase 1: device profile.
	if err := sess.ApplyDeviceProfile(ctx, opts.Device); err != nil {
		return nil, fmt.Errorf("apply device profile: %w", err)
	}

	// Phase 2: install performance observers before navigation.
	perfCleanup, err := perf.Prepare(ctx, sess)
	if err != nil {
		return nil, fmt.Errorf("install performance observers: %w", err)
	}
	defer func() { _ = perfCleanup(ctx) }()

	// Phase 3: navigate.
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	if err := sess.Navigate(ctx, pageURL, timeout); err != nil {
		return nil, fmt.Errorf("navigate: %w", err)
	}

	// Phase 4: cookie-banner dismissal, best-effort.
	if _, err := sess.DismissCookieBanner(ctx); err != nil {
		logger.Warn("cookie banner dismissal failed", "url", pageURL, "error", err)
	}

	// Phase 5: performance metrics.
	var perfResult *report.Performance
	if result, err := perf.Collect(ctx, sess); err != nil {
		logger.Warn("performance collection failed", "url", pageURL, "error", err)
	} else {
		perfResult = result
	}

	// Phase 6: dynamic state exploration, best-effort.
	exploreDynamicState(ctx, sess, logger)

	// Phase 7: keyboard walk.
	var keyboardReport *report.KeyboardReport
	if result, err := keyboardwalk.Walk(ctx, sess); err != nil {
		logger.Warn("keyboard walk failed", "url", pageURL, "error", err)
	} else {
		keyboardReport = result
	}

	// Phase 8: rules engine pass (fatal on failure).
	engineResult, err := engine.Analyze(ctx, sess, engine.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("rules engine pass: %w", err)
	}
	rpt := normalize.MapToReport(pageURL, engineResult)

	// Phase 9: custom ACT suite.
	findings := act.RunAll(ctx, sess, pageURL, act.Registry(), func(probeID string, err error) {
		logger.Warn("act probe failed", "probe", probeID, "url", pageURL, "error", err)
	})
	var actFindings []normalize.ACTFinding
	for _, f := range findings {
		for i, v := range f.Violations {
			item := f.ActionItems[i]
			actFindings = append(actFindings, normalize.ACTFinding{Violation: v, ActionItem: item})
		}
	}
	normalize.Merge(rpt, actFindings)

	// Phase 10: heading structure, broken links, bounding-box capture.
	if result, err := heading.Extract(ctx, sess); err != nil {
		logger.Warn("heading extraction failed", "url", pageURL, "error", err)
	} else {
		rpt.HeadingStructure = result
	}

	rpt.BrokenLinks = linkcheck.Check(ctx, sess, pageURL)

	if !opts.SkipHeavyweight {
		if dims, err := readPageDimensions(ctx, sess); err != nil {
			logger.Warn("page dimension capture failed", "url", pageURL, "error", err)
		} else {
			rpt.PageDimensions = dims
		}
	}

	// Phase 11: derived fields.
	rpt.KeyboardNavigation = keyboardReport
	rpt.Performance = perfResult
	if version, err := sess.BrowserVersion(ctx); err == nil {
		rpt.Meta.BrowserVersion = version
	}
	rpt.DomainHash = domainHash(pageURL)

	return rpt, nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return &UnscannableURLError{URL: raw, Reason: "not an absolute URL"}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &UnscannableURLError{URL: raw, Reason: "scheme must be http or https"}
	}
	ext := strings.ToLower(path.Ext(u.Path))
	if nonHTMLExtensions[ext] {
		return &UnscannableURLError{URL: raw, Reason: fmt.Sprintf("%s is not a scannable document", ext)}
	}
	return nil
}

const pageDimensionsScript = `() => {
	return {
		width: Math.max(document.documentElement.scrollWidth, document.body ? document.body.scrollWidth : 0),
		height: Math.max(document.documentElement.scrollHeight, document.body ? document.body.scrollHeight : 0),
	};
}`

func readPageDimensions(ctx context.Context, sess *session.Session) (*report.PageDimensions, error) {
	var dims report.PageDimensions
	if err := sess.EvalJSON(ctx, pageDimensionsScript, &dims); err != nil {
		return nil, err
	}
	return &dims, nil
}

// expanderScript clicks a bounded set of UI affordances likely to reveal
// hidden content — menu toggles, modal openers, a language switcher — each
// followed by a short settle delay, all best-effort.
const expanderScript = `() => {
	const sel = '[aria-expanded="false"], [data-toggle], .menu-toggle, .hamburger, [aria-haspopup="true"]';
	const els = Array.from(document.querySelectorAll(sel)).slice(0, 5);
	els.forEach(el => { try { el.click(); } catch (e) {} });
	return els.length;
}`

func exploreDynamicState(ctx context.Context, sess *session.Session, logger *slog.Logger) {
	if _, err := sess.Eval(ctx, expanderScript); err != nil {
		logger.Warn("dynamic state exploration failed", "error", err)
		return
	}
	select {
	case <-time.After(300 * time.Millisecond):
	case <-ctx.Done():
	}
}

func domainHash(pageURL string) string {
	u, err := url.Parse(pageURL)
	host := pageURL
	if err == nil && u.Host != "" {
		host = u.Host
	}
	sum := sha256.Sum256([]byte(strings.ToLower(host)))
	return hex.EncodeToString(sum[:])[:16]
}
