package auditor

import (
	"context"

	"github.com/a11yscan/auditor/crawl"
	"github.com/a11yscan/auditor/orchestrator"
	"github.com/a11yscan/auditor/report"
	"github.com/a11yscan/auditor/session"
)

// Options configures a single-page scan. Zero value scans with the desktop
// device profile and captures heavyweight output (page dimensions).
type Options = orchestrator.Options

// CrawlOptions configures a multi-page crawl.
type CrawlOptions = crawl.Options

// Scan drives sess through one page and returns its AuditReport.
func Scan(ctx context.Context, sess *session.Session, url string, opts Options) (*report.AuditReport, error) {
	return orchestrator.Scan(ctx, sess, url, opts)
}

// Crawl discovers and scans pages starting from rootURL, reusing sess
// across pages, and returns the aggregated CrawlSummary.
func Crawl(ctx context.Context, sess *session.Session, rootURL string, opts CrawlOptions) (*report.CrawlSummary, error) {
	return crawl.Crawl(ctx, sess, rootURL, opts)
}
