package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	auditor "github.com/a11yscan/auditor"
	"github.com/a11yscan/auditor/session"
)

var (
	scanOutput          string
	scanSkipHeavyweight bool
)

var scanCmd = &cobra.Command{
	Use:   "scan <url>",
	Short: "Scan a single page",
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

		rpt, err := auditor.Scan(ctx, sess, args[0], auditor.Options{
			Device:          parseDevice(device),
			SkipHeavyweight: scanSkipHeavyweight,
		})
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}

		return writeJSON(rpt, scanOutput)
	},
}

func writeJSON(v interface{}, outPath string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if outPath == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(outPath, data, 0o644)
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "", "write JSON report to this path instead of stdout")
	scanCmd.Flags().BoolVar(&scanSkipHeavyweight, "skip-heavyweight", false, "skip page-dimension capture")
}
