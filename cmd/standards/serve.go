package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	httpDelivery "github.com/swellfound/standards/internal/delivery/http"
)

const shutdownTimeout = 10 * time.Second

var (
	servePort string
	serveWarm bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog over HTTP",
	Long: `Starts the JSON API under /api/v1 with health and Prometheus metrics
endpoints. The server stops gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to listen on (overrides server.port)")
	serveCmd.Flags().BoolVar(&serveWarm, "warm", true, "Fetch the catalog before accepting requests")
}

func runServe(cmd *cobra.Command, args []string) error {
	svc := newServices()
	defer svc.Close()

	port := cfg.Server.Port
	if servePort != "" {
		port = servePort
	}

	logger.Info("starting standards server",
		zap.String("version", httpDelivery.Version),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", port),
	)

	if serveWarm {
		if _, err := svc.catalog.Catalog(cmd.Context()); err != nil {
			logger.Warn("catalog warm-up failed", zap.Error(err))
		}
	}

	handler := httpDelivery.NewHandler(svc.catalog, svc.submissions, logger)
	router := httpDelivery.SetupRouter(cfg, handler, httpDelivery.NewMetrics())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
