// Package main runs the inventory application: it opens the product store, loads
// the screen state and serves it to the local shell over a loopback HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/abgdnv/inventory/internal/app"
	"github.com/abgdnv/inventory/internal/config"
	"github.com/abgdnv/inventory/pkg/bootstrap"
	"github.com/abgdnv/inventory/pkg/config/configloader"
	"github.com/abgdnv/inventory/pkg/server"
	"golang.org/x/sync/errgroup"
)

const appName = "inventory"

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
	log.Println("application stopped gracefully")
}

// run loads the configuration, opens the store, starts the controller and serves
// the HTTP API (and pprof, when enabled) until ctx is cancelled.
func run(ctx context.Context) error {
	cfg, cfgErr := configloader.Load[*config.Config](appName)
	if cfgErr != nil {
		return fmt.Errorf("failed to load configuration: %w", cfgErr)
	}
	log.Printf("Configuration loaded: %v", cfg)

	logger := bootstrap.NewLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	productStore, err := app.NewStore(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to open product store: %w", err)
	}
	defer func() {
		if err := productStore.Close(); err != nil {
			logger.Error("Error closing product store", "error", err)
		}
	}()

	deps, err := app.SetupDependencies(productStore, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to setup dependencies: %w", err)
	}

	// a failed first load is shown to the user as a notice; the API still starts so
	// the shell can retry with a reload
	if err := deps.Controller.Start(ctx); err != nil {
		logger.ErrorContext(ctx, "Initial load failed", "error", err)
	}

	httpServer := app.SetupHttpServer(deps, cfg)

	g, gCtx := errgroup.WithContext(ctx)

	// Start the HTTP server
	g.Go(func() error {
		logger.Info("HTTP server listening", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})
	// gracefully shutdown HTTP server on context cancellation
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	// Start the pprof server if enabled
	if cfg.PProf.Enabled {
		pprofServer := server.NewPprofServer(cfg.PProf.Addr)
		g.Go(func() error {
			logger.Info("Pprof server listening", slog.String("addr", pprofServer.Addr))
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("pprof server failed: %w", err)
			}
			return nil
		})
		// gracefully shutdown pprof server on context cancellation
		g.Go(func() error {
			<-gCtx.Done()
			logger.Info("Shutting down pprof server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
			defer cancel()
			return pprofServer.Shutdown(shutdownCtx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("errgroup encountered an error: %w", err)
	}
	return nil
}
