package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapsolve/internal/cli/config"
	"github.com/leapstack-labs/leapsolve/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver as a JSON HTTP API",
		Long: `Start an HTTP server exposing the solver as JSON endpoints:

  POST /api/solve        {"text": "..."}
  POST /api/expression   {"expression": "..."}
  POST /api/convert      {"value": 5, "from": "km", "to": "m"}
  GET  /api/units        [?dimension=length]
  GET  /healthz

Solve failures are returned as data with status 200. Requests larger
than max_input_bytes are rejected. When history is enabled every
/api/solve call is recorded.`,
		Example: `  leapsolve serve
  leapsolve serve --addr :9000 --history`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			store, closeStore, err := cmdCtx.OpenHistory()
			if err != nil {
				return err
			}
			defer closeStore()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(server.Config{
				Solver:            cmdCtx.Solver,
				History:           store,
				Logger:            cmdCtx.Logger,
				Addr:              cmdCtx.Cfg.Server.Addr,
				MaxInputBytes:     cmdCtx.Cfg.MaxInputBytes,
				ReadHeaderTimeout: cmdCtx.Cfg.Server.ReadHeaderTimeout,
				ShutdownTimeout:   cmdCtx.Cfg.Server.ShutdownTimeout,
			})

			cmdCtx.Renderer.Success("Serving on http://" + cmdCtx.Cfg.Server.Addr)
			cmdCtx.Renderer.Muted("Press Ctrl+C to stop")
			return srv.Serve(ctx)
		},
	}

	// Read through the config layer as server.addr.
	cmd.Flags().String("addr", config.DefaultServerAddr, "Address to listen on")

	return cmd
}
