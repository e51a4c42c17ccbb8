package cli

import (
	"github.com/spf13/cobra"

	"github.com/convoyhq/convoy/internal/server"
	"github.com/convoyhq/convoy/pkg/config"
	"github.com/convoyhq/convoy/pkg/plan"
)

// newServeCmd creates the serve command: run the HTTP API.
func newServeCmd(cfgPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve plans and graph snapshots over HTTP",
		Long: `Serve exposes the planner as a JSON API:

  GET /healthz            liveness probe
  GET /api/plan           compute or fetch the cached publish plan
  GET /api/graph          graph snapshot (?format=json|dot|svg)
  GET /api/report         cycle, wildcard, and peer findings
  GET /api/plans          archived plans, when a store is configured

The server re-reads manifests on every request, so edits to the
workspace show up without a restart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Serve.Addr = addr
			}

			c, err := openCache(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer c.Close()

			st, err := openStore(ctx, cfg, logger)
			if err != nil {
				return err
			}
			if st != nil {
				defer st.Close(ctx)
			}

			srv := server.New(newLoader(cfg), plan.NewRunner(c, logger), st, logger, server.Options{
				Addr:          cfg.Serve.Addr,
				MaxIterations: cfg.MaxIterations,
				CacheTTL:      cfg.Cache.TTL.Duration(),
			})
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}
