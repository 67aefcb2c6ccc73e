package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/deftip/internal/bootstrap"
	"github.com/at-ishikawa/deftip/internal/dictionary"
	"github.com/at-ishikawa/deftip/internal/server"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve getDefinition messages over Connect RPC",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}

			client := dictionary.NewFreeDictionaryClient(cfg.Dictionary.BaseURL, cfg.Dictionary.Timeout)
			cache := dictionary.NewCache(dictionary.WithExpiry(cfg.Cache.Expiry))
			service := dictionary.NewService(cache, client)
			srv := server.New(cfg.Server.Port, service, cfg.Server.CORS.AllowedOrigins)

			app := bootstrap.New()
			app.AddWorker(dictionary.NewSweeper(cache, cfg.Cache.SweepInterval).Start)
			app.AddShutdownHook(func(ctx context.Context) error {
				return client.Close()
			})
			app.AddShutdownHook(func(ctx context.Context) error {
				ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
				defer cancel()
				slog.Default().Info("shutting down server")
				if err := srv.Shutdown(ctx); err != nil {
					return fmt.Errorf("srv.Shutdown > %w", err)
				}
				return nil
			})

			return app.Run(cmd.Context(), func(ctx context.Context) error {
				slog.Default().Info("starting server",
					slog.String("addr", srv.Addr),
					slog.String("procedure", server.GetDefinitionProcedure),
				)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("srv.ListenAndServe > %w", err)
				}
				return nil
			})
		},
	}
}
