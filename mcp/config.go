package mcp

import "time"

// Config configures the MCP server's browser session defaults.
type Config struct {
	// Headless runs the browser without a visible window.
	Headless bool

	// DefaultTimeout is stored with the server config. The scan_page and
	// crawl_site handlers do not apply it; a call is bounded only by the
	// context the MCP server passes to the handler.
	DefaultTimeout time.Duration
}
