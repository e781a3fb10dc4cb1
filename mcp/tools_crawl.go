package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	auditor "github.com/a11yscan/auditor"
)

// CrawlSiteInput defines input for the crawl_site tool.
type CrawlSiteInput struct {
	RootURL string `json:"rootUrl" jsonschema:"description=Absolute root URL to start crawling from"`

	MaxPages int `json:"maxPages,omitempty" jsonschema:"description=Maximum number of pages to scan (default: 10)"`

	Device string `json:"device,omitempty" jsonschema:"description=Device profile: desktop or mobile or tablet or low-vision or reduced-motion (default: desktop)"`

	SkipHeavyweight bool `json:"skipHeavyweight,omitempty" jsonschema:"description=Skip page-dimension capture on every page"`
}

// CrawlSiteOutput summarizes the crawl for the calling agent.
type CrawlSiteOutput struct {
	RootURL                 string `json:"rootUrl"`
	TotalPagesScanned       int    `json:"totalPagesScanned"`
	AverageScore            int    `json:"averageScore"`
	TotalCriticalViolations int    `json:"totalCriticalViolations"`
	TotalViolations         int    `json:"totalViolations"`
	SummaryJSON             string `json:"summaryJson"`
}

func (s *Server) handleCrawlSite(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input CrawlSiteInput,
) (*mcp.CallToolResult, CrawlSiteOutput, error) {
	sess, err := s.browserSession.Get(ctx)
	if err != nil {
		return nil, CrawlSiteOutput{}, err
	}

	maxPages := input.MaxPages
	if maxPages <= 0 {
		maxPages = 10
	}

	summary, err := auditor.Crawl(ctx, sess, input.RootURL, auditor.CrawlOptions{
		MaxPages:        maxPages,
		Device:          parseDeviceProfile(input.Device),
		SkipHeavyweight: input.SkipHeavyweight,
	})
	if err != nil {
		return nil, CrawlSiteOutput{}, fmt.Errorf("crawl failed: %w", err)
	}

	summaryJSON, err := marshalJSON(summary)
	if err != nil {
		return nil, CrawlSiteOutput{}, err
	}

	return nil, CrawlSiteOutput{
		RootURL:                 summary.RootURL,
		TotalPagesScanned:       summary.TotalPagesScanned,
		AverageScore:            summary.AverageScore,
		TotalCriticalViolations: summary.TotalCriticalViolations,
		TotalViolations:         summary.TotalViolations,
		SummaryJSON:             summaryJSON,
	}, nil
}
