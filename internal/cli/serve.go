package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/sentinel/internal/observability"
	"github.com/valter-silva-au/sentinel/internal/server"
)

var (
	serveAddr string
	servePush time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the live dashboard over HTTP",
	Long: `Start the engine and serve the dashboard over HTTP.

Routes:
  /               HTML dashboard that follows the websocket stream
  /chart.svg      the current load chart
  /api/snapshot   the current engine state as JSON
  /api/reset      POST to reseed the engine
  /ws             websocket stream of snapshots
  /metrics        Prometheus metrics (when observability.metrics is on)
  /health         liveness probe

The server shuts down gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireEngine(); err != nil {
			return err
		}

		addr := Config.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}
		push := Config.Server.PushInterval
		if cmd.Flags().Changed("push-interval") {
			push = servePush
		}

		logger := Logger
		if logger == nil {
			logger = observability.NoopLogger()
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		engine := NewEngine(0, nil)
		if err := engine.Start(ctx); err != nil {
			return fmt.Errorf("starting engine: %w", err)
		}
		defer engine.Stop()

		var metrics http.Handler
		if Metrics != nil {
			metrics = Metrics.Handler()
		}

		srv := server.New(engine, server.Options{
			Addr:         addr,
			PushInterval: push,
			Metrics:      metrics,
			Logger:       logger.With(observability.String("component", "http")),
		})
		fmt.Fprintf(cmd.ErrOrStderr(), "Serving sentinel on %s\n", addr)
		if err := srv.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("running http server: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address (overrides server.addr)")
	serveCmd.Flags().DurationVar(&servePush, "push-interval", 250*time.Millisecond, "websocket push interval (overrides server.push_interval)")
	rootCmd.AddCommand(serveCmd)
}
