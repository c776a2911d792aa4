// Package server owns the process lifecycle of `storefront serve`: boot the
// backing services, run HTTP and gRPC until a signal arrives, then drain and
// release everything in reverse order.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/internal/kernel"
	"github.com/shashiranjanraj/storefront/pkg/cache"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/grpc"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/storage"
)

const shutdownTimeout = 15 * time.Second

// Start blocks until SIGINT/SIGTERM or a listener failure.
func Start() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("server: config: %w", err)
	}

	closeLog, err := logger.Setup()
	if err != nil {
		logger.Warn("mongo log sink disabled", "error", err)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.Connect(); err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("database close failed", "error", err)
		}
	}()

	if err := cache.Connect(ctx); err != nil {
		logger.Warn("redis unavailable, catalog cache disabled", "error", err)
	}
	defer cache.Close() //nolint:errcheck

	if err := storage.Connect(ctx); err != nil {
		return err
	}

	k, err := kernel.NewHTTPKernel(database.DB, kernel.Options{})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           k.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	grpcSrv, _, err := grpc.Start(config.GRPCPort(), database.Ping)
	if err != nil {
		return err
	}
	defer grpc.Stop(grpcSrv)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("storefront listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server: http: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	k.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
