package cmd

import (
	"github.com/spf13/cobra"
)

var (
	headless bool
	device   string
	timeout  string
)

var rootCmd = &cobra.Command{
	Use:   "auditor",
	Short: "Accessibility, performance, and link-health auditor",
	Long: `auditor drives a headless browser through a page (or a whole site)
and reports WCAG violations, Core Web Vitals, heading structure, and broken
links.

Examples:
  # Scan a single page
  auditor scan https://example.com

  # Crawl up to 20 pages starting from the root
  auditor crawl https://example.com --max-pages 20

  # Run the MCP server for AI-assisted auditing
  auditor mcp`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&headless, "headless", true, "run the browser headless")
	rootCmd.PersistentFlags().StringVar(&device, "device", "desktop", "device profile: desktop|mobile|tablet|low-vision|reduced-motion")
	rootCmd.PersistentFlags().StringVar(&timeout, "timeout", "60s", "overall command timeout")
}
