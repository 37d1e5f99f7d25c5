package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacentio/todos/internal/config"
	"github.com/jacentio/todos/internal/httpapi"
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the Todo API over HTTP",
		Example: `  # Serve on the default address
  todos serve

  # Serve on a custom address with JSON logs
  todos serve --addr :3000 --log-format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := getApp(cmd)
			if a == nil {
				return errors.New("serve: not initialized")
			}
			return runServe(cmd.Context(), a)
		},
	}

	cmd.Flags().String("addr", "", fmt.Sprintf("Listen address (default: %s)", config.DefaultAddr))
	cmd.Flags().Duration("request-timeout", 0, "Per-request timeout (default: 30s)")
	cmd.Flags().Duration("shutdown-timeout", 0, "Graceful shutdown timeout (default: 5s)")

	return cmd
}

func runServe(ctx context.Context, a *app) error {
	router := httpapi.NewRouter(a.handler, a.logger, httpapi.RouterOptions{
		RequestTimeout: a.cfg.RequestTimeout,
		Sizer:          a.store,
	})

	srv := httpapi.NewServer(router, httpapi.Config{
		Addr:              a.cfg.Addr,
		ReadHeaderTimeout: a.cfg.ReadHeaderTimeout,
		ShutdownTimeout:   a.cfg.ShutdownTimeout,
		Logger:            a.logger,
	})

	a.logger.Info("store ready", "shards", a.store.Config().NumShards)
	return srv.ListenAndServe(ctx)
}
