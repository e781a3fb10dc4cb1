package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	auditor "github.com/a11yscan/auditor"
	"github.com/a11yscan/auditor/session"
)

// ScanPageInput defines input for the scan_page tool.
type ScanPageInput struct {
	URL string `json:"url" jsonschema:"description=Absolute URL of the page to scan"`

	// Device selects the emulated device profile.
	Device string `json:"device,omitempty" jsonschema:"description=Device profile: desktop or mobile or tablet or low-vision or reduced-motion (default: desktop)"`

	// SkipHeavyweight skips page-dimension capture.
	SkipHeavyweight bool `json:"skipHeavyweight,omitempty" jsonschema:"description=Skip page-dimension capture"`
}

// ScanPageOutput summarizes the scan for the calling agent.
type ScanPageOutput struct {
	URL                     string `json:"url"`
	Score                   int    `json:"score"`
	CriticalViolationCount  int    `json:"criticalViolationCount"`
	TotalViolationCount     int    `json:"totalViolationCount"`
	TopIssue                string `json:"topIssue,omitempty"`
	ReportJSON              string `json:"reportJson"`
}

func (s *Server) handleScanPage(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input ScanPageInput,
) (*mcp.CallToolResult, ScanPageOutput, error) {
	sess, err := s.browserSession.Get(ctx)
	if err != nil {
		return nil, ScanPageOutput{}, err
	}

	rpt, err := auditor.Scan(ctx, sess, input.URL, auditor.Options{
		Device:          parseDeviceProfile(input.Device),
		SkipHeavyweight: input.SkipHeavyweight,
	})
	if err != nil {
		return nil, ScanPageOutput{}, fmt.Errorf("scan failed: %w", err)
	}

	reportJSON, err := marshalJSON(rpt)
	if err != nil {
		return nil, ScanPageOutput{}, err
	}

	out := ScanPageOutput{
		URL:                    rpt.URL,
		Score:                  rpt.Score,
		CriticalViolationCount: rpt.Stats.CriticalCount,
		TotalViolationCount:    rpt.Stats.TotalViolations,
		ReportJSON:             reportJSON,
	}
	if len(rpt.HumanReadable.TopIssues) > 0 {
		out.TopIssue = rpt.HumanReadable.TopIssues[0].What
	}

	return nil, out, nil
}

func parseDeviceProfile(name string) session.DeviceProfile {
	switch name {
	case "mobile":
		return session.DeviceMobile
	case "tablet":
		return session.DeviceTablet
	case "low-vision":
		return session.DeviceLowVision
	case "reduced-motion":
		return session.DeviceReducedMotion
	default:
		return session.DeviceDesktop
	}
}
