// Package linkcheck sweeps a page's same-host links with bounded-concurrency
// HEAD requests, using a per-request context timeout wrapping a shared
// *http.Client.
package linkcheck

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/a11yscan/auditor/report"
)

// maxChecked caps how many links a single sweep will check — a page with
// thousands of links shouldn't turn a scan into a crawl.
const maxChecked = 40

const maxConcurrency = 10

const perRequestTimeout = 5 * time.Second

var client = &http.Client{
	Timeout: perRequestTimeout,
	CheckRedirect: func(req *http.Request, via []*http.Request) error {
		if len(via) >= 10 {
			return http.ErrUseLastResponse
		}
		return nil
	},
}

// Extractor is the capability Check needs: list the page's anchor hrefs.
type Extractor interface {
	EvalJSON(ctx context.Context, fn string, out interface{}, args ...interface{}) error
}

const extractHrefsScript = `() => {
	return Array.from(document.querySelectorAll('a[href]'))
		.map(a => a.href)
		.filter(h => h && !h.startsWith('javascript:') && !h.startsWith('mailto:') && !h.startsWith('tel:'));
}`

// Check extracts same-host links from the page, checks up to maxChecked of
// them concurrently, and returns a summary. It never returns an error: a
// failure anywhere in the sweep degrades to an empty LinkHealth rather than
// failing the whole scan, since link health is a non-fatal phase.
func Check(ctx context.Context, page Extractor, pageURL string) *report.LinkHealth {
	var hrefs []string
	if err := page.EvalJSON(ctx, extractHrefsScript, &hrefs); err != nil {
		return &report.LinkHealth{}
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return &report.LinkHealth{}
	}

	sameHost := make([]string, 0, len(hrefs))
	seen := map[string]bool{}
	for _, h := range hrefs {
		u, err := url.Parse(h)
		if err != nil || u.Host != base.Host {
			continue
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			continue
		}
		if seen[h] {
			continue
		}
		seen[h] = true
		sameHost = append(sameHost, h)
		if len(sameHost) >= maxChecked {
			break
		}
	}

	if len(sameHost) == 0 {
		return &report.LinkHealth{}
	}

	results := make([]report.BrokenLink, 0)
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, maxConcurrency)

	for _, link := range sameHost {
		wg.Add(1)
		sem <- struct{}{}
		go func(link string) {
			defer wg.Done()
			defer func() { <-sem }()

			status, checkErr := checkOne(ctx, link)
			if checkErr != nil || status < 200 || status >= 400 {
				mu.Lock()
				bl := report.BrokenLink{URL: link, Status: status}
				if checkErr != nil {
					bl.Error = checkErr.Error()
				}
				results = append(results, bl)
				mu.Unlock()
			}
		}(link)
	}
	wg.Wait()

	return &report.LinkHealth{
		TotalChecked: len(sameHost),
		Broken:       results,
	}
}

func checkOne(ctx context.Context, link string) (int, error) {
	reqCtx, cancel := context.WithTimeout(ctx, perRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodHead, link, nil)
	if err != nil {
		return 0, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusMethodNotAllowed {
		// Some servers reject HEAD outright; retry once with GET rather
		// than report a false broken link.
		return checkWithGet(reqCtx, link)
	}
	return resp.StatusCode, nil
}

func checkWithGet(ctx context.Context, link string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return 0, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}
