package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/blog-engagement-api/internal/api"
	"github.com/blog-engagement-api/internal/repository"
	"github.com/blog-engagement-api/internal/service"
	"github.com/spf13/cobra"
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := a.load(os.Stdout)
			if err != nil {
				return err
			}
			cfg := a.cfg
			log.Info().Msg("Starting blog engagement API server...")

			// Initialize store
			store, err := repository.Open(cfg, log)
			if err != nil {
				log.Error().Err(err).Str("backend", cfg.Store.Backend).Msg("Failed to open store")
				return err
			}
			defer store.Close()

			// Initialize services
			services := service.NewServices(store, log)

			// Initialize router
			router := api.NewRouter(services, cfg, log)

			// Create HTTP server
			srv := &http.Server{
				Addr:         ":" + cfg.Server.Port,
				Handler:      router,
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
				IdleTimeout:  cfg.Server.ReadTimeout,
			}

			// Start server in goroutine
			serveErr := make(chan error, 1)
			go func() {
				log.Info().
					Str("port", cfg.Server.Port).
					Str("backend", cfg.Store.Backend).
					Str("origin", cfg.AllowedOrigin()).
					Msg("Server listening")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serveErr <- err
				}
			}()

			// Graceful shutdown
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(quit)

			select {
			case err := <-serveErr:
				log.Error().Err(err).Msg("Server failed")
				return err
			case <-quit:
			}
			log.Info().Msg("Shutting down server...")

			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				log.Error().Err(err).Msg("Server forced to shutdown")
				return err
			}

			log.Info().Msg("Server exited gracefully")
			return nil
		},
	}
}
