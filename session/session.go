package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Session is a single headless-browser tab driven over WebDriver BiDi. The
// scan orchestrator drives one Session per scan; the crawler reuses one
// Session across pages, navigating the same browsing context to each page
// in turn. The browsing context is not closed and reopened between pages.
type Session struct {
	client      *bidiClient
	driver      *driverProcess
	browsingCtx string
	closed      bool
}

// Launch starts (or attaches to) the browser driver process and opens a
// fresh browsing context.
func Launch(ctx context.Context, opts LaunchOptions) (*Session, error) {
	driver, err := startDriver(ctx, opts)
	if err != nil {
		return nil, err
	}

	client := newBiDiClient()
	if err := client.Connect(ctx, driver.WebSocketURL()); err != nil {
		_ = driver.Stop()
		return nil, err
	}

	result, err := client.Send(ctx, "browsingContext.create", map[string]interface{}{
		"type": "tab",
	})
	if err != nil {
		_ = client.Close()
		_ = driver.Stop()
		return nil, fmt.Errorf("create browsing context: %w", err)
	}

	var resp struct {
		Context string `json:"context"`
	}
	if err := json.Unmarshal(result, &resp); err != nil {
		_ = client.Close()
		_ = driver.Stop()
		return nil, fmt.Errorf("parse browsing context: %w", err)
	}

	return &Session{client: client, driver: driver, browsingCtx: resp.Context}, nil
}

// IsClosed reports whether the session has been torn down.
func (s *Session) IsClosed() bool { return s.closed }

// Close releases the browsing context, the WebSocket connection, and the
// driver process. Safe to call more than once.
func (s *Session) Close(ctx context.Context) error {
	if s.closed {
		return nil
	}
	s.closed = true

	_, _ = s.client.Send(ctx, "browsingContext.close", map[string]interface{}{
		"context": s.browsingCtx,
	})

	if err := s.client.Close(); err != nil {
		return err
	}
	return s.driver.Stop()
}

// Navigate loads url and waits for the document's readiness state to reach
// "complete", bounded by timeout. It does not wait for network idle. A zero timeout uses the package default of 30s (the scan
// orchestrator's navigation cap per its phase sequence).
func (s *Session) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	if s.closed {
		return ErrConnectionClosed
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err := s.client.Send(ctx, "browsingContext.navigate", map[string]interface{}{
		"context": s.browsingCtx,
		"url":     url,
		"wait":    "complete",
	})
	return err
}

// URL returns the current document URL.
func (s *Session) URL(ctx context.Context) (string, error) {
	value, err := s.Eval(ctx, `() => window.location.href`)
	if err != nil {
		return "", err
	}
	str, _ := value.(string)
	return str, nil
}

// Title returns the current document title.
func (s *Session) Title(ctx context.Context) (string, error) {
	value, err := s.Eval(ctx, `() => document.title`)
	if err != nil {
		return "", err
	}
	str, _ := value.(string)
	return str, nil
}

// Eval runs a JavaScript function expression in the page and returns its
// JSON-decoded result. This is the DomEvaluator capability every ACT probe,
// the keyboard walk, and the performance collector are built on: strings go
// across the BiDi boundary, never typed objects.
func (s *Session) Eval(ctx context.Context, fn string, args ...interface{}) (interface{}, error) {
	if s.closed {
		return nil, ErrConnectionClosed
	}

	jsArgs := make([]interface{}, 0, len(args))
	for _, a := range args {
		jsArgs = append(jsArgs, map[string]interface{}{"type": "string", "value": toJSONString(a)})
	}

	params := map[string]interface{}{
		"functionDeclaration": fn,
		"target":              map[string]interface{}{"context": s.browsingCtx},
		"arguments":           jsArgs,
		"awaitPromise":        true,
		"resultOwnership":     "root",
	}

	result, err := s.client.Send(ctx, "script.callFunction", params)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Result struct {
			Type  string          `json:"type"`
			Value json.RawMessage `json:"value"`
		} `json:"result"`
	}
	if err := json.Unmarshal(result, &resp); err != nil {
		return nil, fmt.Errorf("decode eval result: %w", err)
	}

	var value interface{}
	if len(resp.Result.Value) > 0 {
		if err := json.Unmarshal(resp.Result.Value, &value); err != nil {
			// Primitive values (string/number/bool) round-trip fine through
			// json.Unmarshal above; anything else is surfaced raw.
			return string(resp.Result.Value), nil
		}
	}
	return value, nil
}

// EvalJSON is Eval plus unmarshaling the result directly into out. Probes
// that need a structured result (a list of violations, a bounding box) use
// this instead of type-asserting Eval's interface{}.
func (s *Session) EvalJSON(ctx context.Context, fn string, out interface{}, args ...interface{}) error {
	value, err := s.Eval(ctx, fn, args...)
	if err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func toJSONString(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

// SetViewport resizes the browsing context's viewport.
func (s *Session) SetViewport(ctx context.Context, vp Viewport) error {
	_, err := s.client.Send(ctx, "browsingContext.setViewport", map[string]interface{}{
		"context": s.browsingCtx,
		"viewport": map[string]interface{}{
			"width":  vp.Width,
			"height": vp.Height,
		},
	})
	return err
}

// ApplyDeviceProfile sets viewport, user-agent, device-scale-factor, and
// prefers-reduced-motion according to the named preset. It also hides
// scrollbars so that layout widths stay consistent between the scan and
// any screenshot.
func (s *Session) ApplyDeviceProfile(ctx context.Context, d DeviceProfile) error {
	p := resolveProfile(d)

	if _, err := s.client.Send(ctx, "browsingContext.setViewport", map[string]interface{}{
		"context": s.browsingCtx,
		"viewport": map[string]interface{}{
			"width":  p.Viewport.Width,
			"height": p.Viewport.Height,
		},
		"devicePixelRatio": p.DeviceScale,
	}); err != nil {
		return err
	}

	_, err := s.client.Send(ctx, "emulation.setUserAgentOverride", map[string]interface{}{
		"context":   s.browsingCtx,
		"userAgent": p.UserAgent,
	})
	if err != nil {
		return err
	}

	if p.ReducedMotion {
		if _, err := s.client.Send(ctx, "emulation.setReducedMotion", map[string]interface{}{
			"context": s.browsingCtx,
			"value":   "reduce",
		}); err != nil {
			return err
		}
	}

	if p.Zoom != 0 && p.Zoom != 1 {
		_, err := s.Eval(ctx, fmt.Sprintf(`() => { document.documentElement.style.zoom = "%g"; }`, p.Zoom))
		if err != nil {
			return err
		}
	}

	_, err = s.Eval(ctx, `() => {
		const style = document.createElement('style');
		style.setAttribute('data-auditor-scrollbar-hide', '1');
		style.textContent = '::-webkit-scrollbar { display: none; } html { scrollbar-width: none; }';
		document.head.appendChild(style);
	}`)
	return err
}

// Screenshot captures a PNG of the current viewport. The scan orchestrator
// does not call it: an AuditReport is produced without screenshots, and the
// Scan SkipHeavyweight option governs only page-dimension capture.
func (s *Session) Screenshot(ctx context.Context) ([]byte, error) {
	result, err := s.client.Send(ctx, "browsingContext.captureScreenshot", map[string]interface{}{
		"context": s.browsingCtx,
	})
	if err != nil {
		return nil, err
	}
	var resp struct {
		Data string `json:"data"`
	}
	if err := json.Unmarshal(result, &resp); err != nil {
		return nil, err
	}
	return decodeBase64(resp.Data)
}

// Keyboard returns the keyboard input controller for this session.
func (s *Session) Keyboard() *Keyboard {
	return &Keyboard{client: s.client, context: s.browsingCtx}
}

// AddPreloadScript registers a script to run in every document loaded in
// this browsing context from now on, before any page script runs. The
// performance collector uses this to install its Core Web Vitals
// observers ahead of navigation, since LCP/CLS/INP can only be captured by
// an observer that existed before the page started rendering.
func (s *Session) AddPreloadScript(ctx context.Context, fn string) (string, error) {
	result, err := s.client.Send(ctx, "script.addPreloadScript", map[string]interface{}{
		"functionDeclaration": fn,
		"contexts":            []string{s.browsingCtx},
	})
	if err != nil {
		return "", err
	}
	var resp struct {
		Script string `json:"script"`
	}
	if err := json.Unmarshal(result, &resp); err != nil {
		return "", fmt.Errorf("decode preload script id: %w", err)
	}
	return resp.Script, nil
}

// RemovePreloadScript unregisters a script previously added with
// AddPreloadScript.
func (s *Session) RemovePreloadScript(ctx context.Context, scriptID string) error {
	_, err := s.client.Send(ctx, "script.removePreloadScript", map[string]interface{}{
		"script": scriptID,
	})
	return err
}

// BrowserVersion reports the driver-reported browser version string, used
// to populate AuditReport.Meta.BrowserVersion.
func (s *Session) BrowserVersion(ctx context.Context) (string, error) {
	result, err := s.client.Send(ctx, "session.status", nil)
	if err != nil {
		return "unknown", nil //nolint:nilerr // version metadata is best-effort
	}
	var resp struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(result, &resp)
	if resp.Message == "" {
		return "unknown", nil
	}
	return resp.Message, nil
}
