// Command auditor scans pages and crawls sites for accessibility,
// performance, and link-health issues.
package main

import (
	"os"

	"github.com/a11yscan/auditor/cmd/auditor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
