package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	auditormcp "github.com/a11yscan/auditor/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server for AI-assisted auditing",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigCh
			cancel()
		}()

		server := auditormcp.NewServer(auditormcp.Config{Headless: headless})
		defer func() { _ = server.Close(context.Background()) }()

		return server.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
