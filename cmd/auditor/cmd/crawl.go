package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	auditor "github.com/a11yscan/auditor"
	"github.com/a11yscan/auditor/session"
)

var (
	crawlOutput          string
	crawlMaxPages        int
	crawlSkipHeavyweight bool
)

var crawlCmd = &cobra.Command{
	Use:   "crawl <url>",
	Short: "Crawl a site and aggregate per-page reports",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid --timeout: %w", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), d)
		defer cancel()

		sess, err := session.Launch(ctx, session.LaunchOptions{Headless: headless})
		if err != nil {
			return fmt.Errorf("launch browser: %w", err)
		}
		defer func() { _ = sess.Close(context.Background()) }()

		summary, err := auditor.Crawl(ctx, sess, args[0], auditor.CrawlOptions{
			MaxPages:        crawlMaxPages,
			Device:          parseDevice(device),
			SkipHeavyweight: crawlSkipHeavyweight,
		})
		if err != nil {
			return fmt.Errorf("crawl failed: %w", err)
		}

		return writeJSON(summary, crawlOutput)
	},
}

func init() {
	rootCmd.AddCommand(crawlCmd)
	crawlCmd.Flags().StringVarP(&crawlOutput, "output", "o", "", "write JSON summary to this path instead of stdout")
	crawlCmd.Flags().IntVar(&crawlMaxPages, "max-pages", 10, "maximum number of pages to scan")
	crawlCmd.Flags().BoolVar(&crawlSkipHeavyweight, "skip-heavyweight", false, "skip page-dimension capture on every page")
}
