// Serve command runs the schemaboard HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/schemaboard/internal/httpapi"
	"github.com/mesh-intelligence/schemaboard/internal/workflow"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the schema API over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := settings.BindPFlag(cfgKeyListenAddr, cmd.Flags().Lookup("addr")); err != nil {
			return systemError("binding listen address: %w", err)
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return withService(func(svc *workflow.Service) error {
			srv := &http.Server{
				Addr: settings.GetString(cfgKeyListenAddr),
				Handler: httpapi.NewRouter(svc, logger, httpapi.Options{
					AllowedOrigins: settings.GetStringSlice(cfgKeyAllowedOrigins),
				}),
				ReadHeaderTimeout: 10 * time.Second,
			}
			return serve(ctx, srv)
		})
	},
}

func serve(ctx context.Context, srv *http.Server) error {
	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return systemError("serving: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return systemError("shutting down: %w", err)
	}
	return nil
}

func init() {
	serveCmd.Flags().String("addr", defaultListenAddr, "listen address")
}
