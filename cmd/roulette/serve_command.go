package main

import (
	"github.com/spf13/cobra"

	"movieroulette/internal/api"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the roulette API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("bind") {
				cfg.API.Bind = bind
			}
			session, err := ctx.ensureSession(true)
			if err != nil {
				return err
			}
			defer func() { _ = ctx.close() }()

			logger, err := ctx.ensureLogger(true)
			if err != nil {
				return err
			}
			return api.New(cfg, session, logger).Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (overrides api.bind)")
	return cmd
}
