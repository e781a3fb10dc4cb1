// Package crawl discovers and schedules scans across a site, reusing a
// single browser session across pages and aggregating per-page reports into
// a CrawlSummary.
package crawl

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/a11yscan/auditor/orchestrator"
	"github.com/a11yscan/auditor/report"
	"github.com/a11yscan/auditor/session"
)

// priorityKeywords rank discovered URLs for scheduling order; English and
// Czech equivalents observed in the wild, frozen rather than grown.
var priorityKeywords = []string{
	"contact", "about", "pricing", "services", "products",
	"kontakt", "o-nas", "cenik", "sluzby", "produkty",
}

// locRegex is deliberately lenient: some sitemaps are hand-written or
// produced by tools that don't escape entities correctly.
var locRegex = regexp.MustCompile(`<loc>\s*([^<\s][^<]*?)\s*</loc>`)

// Options configures one site crawl.
type Options struct {
	MaxPages        int
	Device          session.DeviceProfile
	SkipHeavyweight bool
	Logger          *slog.Logger
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Crawl discovers pages starting from rootURL and scans up to
// opts.MaxPages of them, reusing sess across pages.
func Crawl(ctx context.Context, sess *session.Session, rootURL string, opts Options) (*report.CrawlSummary, error) {
	logger := opts.logger()
	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = 1
	}

	root, err := url.Parse(rootURL)
	if err != nil || !root.IsAbs() {
		return nil, fmt.Errorf("crawl: invalid root url %q", rootURL)
	}

	queue := discover(ctx, root, logger)

	visited := map[string]bool{}
	var pages []report.AuditReport

	for len(queue) > 0 && len(pages) < maxPages {
		next := queue[0]
		queue = queue[1:]

		key := normalizeURL(next)
		if visited[key] {
			continue
		}
		visited[key] = true

		rpt, err := orchestrator.Scan(ctx, sess, next, orchestrator.Options{
			Device:          opts.Device,
			SkipHeavyweight: opts.SkipHeavyweight,
			Logger:          logger,
		})
		if err != nil {
			logger.Warn("crawl: page scan failed", "url", next, "error", err)
			continue
		}
		pages = append(pages, *rpt)

		links := discoverPageLinks(ctx, sess, root, logger)
		for _, link := range links {
			if !visited[normalizeURL(link)] {
				queue = append(queue, link)
			}
		}
	}

	return aggregate(rootURL, pages), nil
}

// discover fetches /sitemap.xml and extracts same-host <loc> entries,
// prioritized by keyword match. Falls back to the root URL alone.
func discover(ctx context.Context, root *url.URL, logger *slog.Logger) []string {
	sitemapURL := root.Scheme + "://" + root.Host + "/sitemap.xml"

	reqCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, sitemapURL, nil)
	if err != nil {
		return []string{root.String()}
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		logger.Warn("crawl: sitemap fetch failed, seeding with root only", "url", sitemapURL, "error", err)
		return []string{root.String()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return []string{root.String()}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return []string{root.String()}
	}

	locs := extractLocs(body)

	var sameHost []string
	for _, loc := range locs {
		u, err := url.Parse(loc)
		if err != nil || u.Host != root.Host {
			continue
		}
		sameHost = append(sameHost, loc)
	}

	if len(sameHost) == 0 {
		return []string{root.String()}
	}

	sort.SliceStable(sameHost, func(i, j int) bool {
		return keywordRank(sameHost[i]) < keywordRank(sameHost[j])
	})

	return sameHost
}

// extractLocs uses the lenient regex first (most real-world sitemaps
// tolerate it); it falls back to a strict XML unmarshal only if the regex
// finds nothing, since some sitemaps use namespaces the regex can still
// read past but a strict decoder won't without configuration.
func extractLocs(body []byte) []string {
	matches := locRegex.FindAllSubmatch(body, -1)
	if len(matches) > 0 {
		out := make([]string, 0, len(matches))
		for _, m := range matches {
			out = append(out, strings.TrimSpace(string(m[1])))
		}
		return out
	}

	var doc struct {
		URLs []struct {
			Loc string `xml:"loc"`
		} `xml:"url"`
	}
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil
	}
	out := make([]string, 0, len(doc.URLs))
	for _, u := range doc.URLs {
		out = append(out, strings.TrimSpace(u.Loc))
	}
	return out
}

func keywordRank(rawURL string) int {
	lower := strings.ToLower(rawURL)
	for i, kw := range priorityKeywords {
		if strings.Contains(lower, kw) {
			return i
		}
	}
	return len(priorityKeywords)
}

// expandNavScript best-effort hovers/clicks nav and menu candidates to
// surface megamenu items before link extraction.
const expandNavScript = `() => {
	const els = Array.from(document.querySelectorAll('nav [aria-haspopup], nav .menu, .megamenu-trigger')).slice(0, 5);
	els.forEach(el => {
		try {
			el.dispatchEvent(new MouseEvent('mouseover', {bubbles: true}));
			el.click();
		} catch (e) {}
	});
}`

const extractPageLinksScript = `() => {
	return Array.from(document.querySelectorAll('a[href]'))
		.map(a => a.href)
		.filter(h => h && (h.startsWith('http://') || h.startsWith('https://')));
}`

func discoverPageLinks(ctx context.Context, sess *session.Session, root *url.URL, logger *slog.Logger) []string {
	if _, err := sess.Eval(ctx, expandNavScript); err != nil {
		logger.Warn("crawl: nav expansion failed", "error", err)
	}

	var hrefs []string
	if err := sess.EvalJSON(ctx, extractPageLinksScript, &hrefs); err != nil {
		logger.Warn("crawl: link extraction failed", "error", err)
		return nil
	}

	var sameHost []string
	for _, h := range hrefs {
		u, err := url.Parse(h)
		if err != nil || u.Host != root.Host {
			continue
		}
		sameHost = append(sameHost, h)
	}
	return sameHost
}

func normalizeURL(raw string) string {
	return strings.TrimSuffix(strings.ToLower(raw), "/")
}

func aggregate(rootURL string, pages []report.AuditReport) *report.CrawlSummary {
	summary := &report.CrawlSummary{
		RootURL:           rootURL,
		TotalPagesScanned: len(pages),
		Pages:             pages,
	}
	if len(pages) == 0 {
		return summary
	}

	var scoreSum, criticalSum, totalSum int
	var lcpSum, clsSum, inpSum, tbtSum float64
	var lcpN, clsN, inpN, tbtN int

	for _, p := range pages {
		scoreSum += p.Score
		criticalSum += p.Stats.CriticalCount
		totalSum += p.Stats.TotalViolations

		if p.Performance == nil {
			continue
		}
		if p.Performance.LCP != nil {
			lcpSum += p.Performance.LCP.Value
			lcpN++
		}
		if p.Performance.CLS != nil {
			clsSum += p.Performance.CLS.Value
			clsN++
		}
		if p.Performance.INP != nil {
			inpSum += p.Performance.INP.Value
			inpN++
		}
		if p.Performance.TBT != nil {
			tbtSum += p.Performance.TBT.Value
			tbtN++
		}
	}

	summary.AverageScore = int(math.Round(float64(scoreSum) / float64(len(pages))))
	summary.TotalCriticalViolations = criticalSum
	summary.TotalViolations = totalSum

	if lcpN+clsN+inpN+tbtN > 0 {
		perfSummary := &report.PerformanceSummary{}
		if lcpN > 0 {
			v := lcpSum / float64(lcpN)
			perfSummary.LCP = &v
		}
		if clsN > 0 {
			v := clsSum / float64(clsN)
			perfSummary.CLS = &v
		}
		if inpN > 0 {
			v := inpSum / float64(inpN)
			perfSummary.INP = &v
		}
		if tbtN > 0 {
			v := tbtSum / float64(tbtN)
			perfSummary.TBT = &v
		}
		summary.PerformanceSummary = perfSummary
	}

	return summary
}
