package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/textvary/internal/api"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noStore bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the variation API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := c.config()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			runner, err := c.newRunner(ctx, cfg, false)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := api.Config{
				Addr:            cfg.Server.Addr,
				CORSOrigins:     cfg.Server.CORSOrigins,
				BodyLimit:       cfg.Server.BodyLimit,
				ReadTimeout:     cfg.Server.ReadTimeout.Duration,
				WriteTimeout:    cfg.Server.WriteTimeout.Duration,
				ShutdownTimeout: cfg.Server.ShutdownTimeout.Duration,
			}
			if noStore {
				return api.New(srv, runner, nil, logger).ListenAndServe(ctx)
			}

			st, err := c.newStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close()
			logger.Info("run store ready", "backend", cfg.Store.Backend)
			return api.New(srv, runner, st, logger).ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "disable run storage and the /runs routes")
	return cmd
}
