// Package app contains the application setup for the catalog service.
package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/abgdnv/catalog/internal/config"
	"github.com/abgdnv/catalog/internal/metrics"
	"github.com/abgdnv/catalog/internal/openapi"
	"github.com/abgdnv/catalog/internal/service"
	"github.com/abgdnv/catalog/internal/store"
	"github.com/abgdnv/catalog/internal/transport/rest"
	pkgconfig "github.com/abgdnv/catalog/pkg/config"
	"github.com/abgdnv/catalog/pkg/messaging"
	"github.com/abgdnv/catalog/pkg/server"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	apiPrefix   = "/api"
	openapiPath = apiPrefix + "/openapi.json"
)

type Dependencies struct {
	UserService    service.UserService
	ProductService service.ProductService
	Metrics        *metrics.Metrics
	Registry       *prometheus.Registry
	Logger         *slog.Logger
	Version        string
	Started        time.Time
}

// SetupDependencies creates the stores, the services on top of them and the metrics registry.
// Domain events go to publisher.
func SetupDependencies(publisher messaging.Publisher, version string, logger *slog.Logger) *Dependencies {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)
	observer := service.NewObserver(publisher, m, logger)

	return &Dependencies{
		UserService:    service.NewUserService(store.NewUserStore(), observer),
		ProductService: service.NewProductService(store.NewProductStore(), observer),
		Metrics:        m,
		Registry:       registry,
		Logger:         logger,
		Version:        version,
		Started:        time.Now(),
	}
}

// SetupHttpHandler initializes the routes and middleware of the catalog service.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies, corsCfg pkgconfig.CORSConfig) (http.Handler, error) {
	mux := server.NewChiRouter(deps.Logger,
		server.CORS(server.CORSConfig{
			AllowedOrigins:   corsCfg.AllowedOrigins,
			AllowedMethods:   corsCfg.AllowedMethods,
			AllowedHeaders:   corsCfg.AllowedHeaders,
			AllowCredentials: corsCfg.AllowCredentials,
			MaxAge:           corsCfg.MaxAge,
		}),
		deps.Metrics.HTTPMetrics,
	)
	if err := wireRoutes(mux, deps); err != nil {
		return nil, err
	}
	return mux, nil
}

// wireRoutes sets up the HTTP routes for the catalog service.
func wireRoutes(mux *chi.Mux, deps *Dependencies) error {
	docHandler, err := openapi.Handler(openapi.Build(deps.Version))
	if err != nil {
		return fmt.Errorf("failed to build api documentation: %w", err)
	}

	healthHandler := rest.NewHealthHandler(deps.Started, deps.Logger)
	userHandler := rest.NewUserHandler(deps.UserService, deps.Logger)
	productHandler := rest.NewProductHandler(deps.ProductService, deps.Logger)

	mux.Get("/health", healthHandler.HealthCheck)
	mux.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Registry))
	mux.Method(http.MethodGet, "/api-docs", openapi.UIHandler("Catalog API", openapiPath))
	mux.Route(apiPrefix, func(r chi.Router) {
		r.Method(http.MethodGet, "/openapi.json", docHandler)
		userHandler.RegisterRoutes(r)
		productHandler.RegisterRoutes(r)
	})
	return nil
}

// SetupHttpServer creates and configures an HTTP server for the catalog service.
// With telemetry enabled every request is traced.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) (*http.Server, error) {
	handler, err := SetupHttpHandler(deps, cfg.CORS)
	if err != nil {
		return nil, err
	}
	if cfg.Telemetry.Enabled {
		handler = otelhttp.NewHandler(handler, "catalog.http")
	}

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, handler), nil
}
