package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"assetdirectory/internal/core/container"
	"assetdirectory/internal/core/routes"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the asset directory HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := runtime(cmd)
			if err != nil {
				return err
			}
			defer log.Sync()

			if err := cfg.Validate(); err != nil {
				return err
			}
			if cfg.JWTSecret == "" {
				return errors.New("JWT_SECRET environment variable is not set")
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			c, err := container.NewAppContainer(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer c.Close()

			server := &http.Server{
				Addr:    cfg.AppHost,
				Handler: routes.NewRouter(c),
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("Starting server", zap.String("addr", cfg.AppHost), zap.String("backend", cfg.CatalogBackend))
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
				shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
				defer stop()
				log.Info("Shutting down server")
				return server.Shutdown(shutdownCtx)
			}
		},
	}
}
