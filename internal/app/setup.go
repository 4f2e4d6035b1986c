// Package app wires the inventory store, controller and HTTP adapter together.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/inventory/internal/config"
	"github.com/abgdnv/inventory/internal/controller"
	"github.com/abgdnv/inventory/internal/input"
	"github.com/abgdnv/inventory/internal/store"
	"github.com/abgdnv/inventory/internal/transport/rest"
	"github.com/abgdnv/inventory/pkg/bootstrap"
	pkgconfig "github.com/abgdnv/inventory/pkg/config"
	"github.com/abgdnv/inventory/pkg/server"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Dependencies struct {
	Controller *controller.Controller
	Formatter  *input.CurrencyFormatter
	Registry   *prometheus.Registry
	Metrics    pkgconfig.MetricsConfig
	Logger     *slog.Logger
}

// NewStore opens the storage engine selected by cfg.Driver.
// The schema is created later by the controller's Start.
func NewStore(ctx context.Context, cfg pkgconfig.DatabaseConfig, logger *slog.Logger) (store.ProductStore, error) {
	switch cfg.Driver {
	case pkgconfig.DriverMemory:
		logger.Warn("Using in-memory store, products are lost on exit")
		return store.NewInMemoryStore(), nil
	case pkgconfig.DriverPostgres:
		dbPool, err := bootstrap.NewDbPool(ctx, cfg.URL, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		logger.Info("Successfully connected to the database!")
		return store.NewPgStore(dbPool, cfg.URL), nil
	case pkgconfig.DriverSQLite, "":
		s, err := store.NewSQLiteStore(cfg.URL)
		if err != nil {
			return nil, err
		}
		logger.Info("Opened SQLite database", "path", s.Path())
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}
}

// SetupDependencies builds the controller over s. When metrics are enabled the
// store is instrumented and its collectors registered on a private registry.
func SetupDependencies(s store.ProductStore, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	formatter, err := input.NewCurrencyFormatter(cfg.Currency.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to create currency formatter: %w", err)
	}

	registry := prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		s = store.Instrument(s, store.NewMetrics(registry))
	}

	return &Dependencies{
		Controller: controller.New(s, logger),
		Formatter:  formatter,
		Registry:   registry,
		Metrics:    cfg.Metrics,
		Logger:     logger,
	}, nil
}

// SetupHttpHandler builds the router with all routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	inventoryHandler := rest.NewHandler(deps.Controller, deps.Formatter, deps.Logger)
	inventoryHandler.RegisterRoutes(mux)
	if deps.Metrics.Enabled {
		mux.Handle(deps.Metrics.Path, promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}
}

// SetupHttpServer creates and configures the HTTP server.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {

	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
