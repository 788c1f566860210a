package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"microarchive/internal/http"
	"microarchive/internal/iiif"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(os.Stdout)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			if port == "" {
				port = a.cfg.APIPort
			}
			addr := ":" + port

			router := http.NewRouter(&http.Deps{
				PublishService: a.service,
				Host:           a.host,
				Publications:   a.publications,
				Manifest: iiif.Config{
					BaseURL:     fmt.Sprintf("http://localhost%s/preview", addr),
					ServiceURL:  a.cfg.IIIFServerURL,
					Prefix:      a.cfg.S3Prefix,
					ImageFormat: a.cfg.IIIFImageFormat,
					Attribution: a.cfg.IIIFAttribution,
					Rights:      a.cfg.IIIFRights,
				},
				HealthChecks: a.healthChecks(),
			})

			srv := &nethttp.Server{
				Addr:              addr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				slog.Info("Starting API server", "addr", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, nethttp.ErrServerClosed) {
					return fmt.Errorf("API server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			slog.Info("Shutting down API server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Port to listen on (default from API_PORT)")

	return cmd
}
