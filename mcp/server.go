// Package mcp exposes the auditor's two operations — scan_page and
// crawl_site — as Model Context Protocol tools, so an AI agent can drive
// accessibility and performance audits the same way a human uses the CLI.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/a11yscan/auditor/session"
)

// Server is the auditor MCP server.
type Server struct {
	browserSession *Session
	mcpServer      *mcp.Server
	config         Config
}

// NewServer creates a new MCP server with the given config.
func NewServer(config Config) *Server {
	s := &Server{
		config: config,
		browserSession: NewSession(session.LaunchOptions{
			Headless: config.Headless,
		}),
	}

	s.mcpServer = mcp.NewServer(
		&mcp.Implementation{
			Name:    "auditor-mcp",
			Version: "0.1.0",
		},
		nil,
	)

	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "scan_page",
		Description: "Scan a single URL for accessibility violations, Core Web Vitals, heading structure, and broken links.",
	}, s.handleScanPage)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "crawl_site",
		Description: "Crawl a site starting from a root URL and aggregate per-page audit reports.",
	}, s.handleCrawlSite)
}

// Run starts the MCP server over stdio.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// Close tears down the server's browser session.
func (s *Server) Close(ctx context.Context) error {
	return s.browserSession.Close(ctx)
}
