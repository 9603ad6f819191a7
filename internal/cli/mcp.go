package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/sentinel/internal/mcp"
	"github.com/valter-silva-au/sentinel/internal/observability"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  "Commands for running the sentinel MCP (Model Context Protocol) server.",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the sentinel MCP server on stdio",
	Long: `Start the engine and the sentinel MCP server on stdio transport.

The server exposes the live engine as MCP tools that AI assistants can
call: get_snapshot, get_curve, get_stats.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireEngine(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		// stdout carries the protocol, so the engine must not log there.
		engine := NewEngine(0, observability.NoopLogger())
		if err := engine.Start(ctx); err != nil {
			return fmt.Errorf("starting engine: %w", err)
		}
		defer engine.Stop()

		srv := mcp.NewServer(engine, Stats, appVersion)
		if err := srv.Run(ctx); err != nil {
			return fmt.Errorf("running MCP server: %w", err)
		}
		return nil
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}
