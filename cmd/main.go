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
	"time"

	"github.com/UnknownOlympus/helios/internal/buildings"
	"github.com/UnknownOlympus/helios/internal/config"
	"github.com/UnknownOlympus/helios/internal/geocoding"
	"github.com/UnknownOlympus/helios/internal/metrics"
	"github.com/UnknownOlympus/helios/internal/repository"
	"github.com/UnknownOlympus/helios/internal/server"
	"github.com/UnknownOlympus/helios/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

const (
	readTimeout     = 5 * time.Second
	writeTimeout    = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

// healthCheck reports whether the service can still answer requests.
type healthCheck func(ctx context.Context) error

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	// The building dataset is loaded once and shared read-only by all requests.
	dataset, health, closeFn, err := loadDataset(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to load building dataset: %v", err)
	}
	defer closeFn()
	appMetrics.DatasetSize.Set(float64(dataset.Len()))
	logger.InfoContext(ctx, "Building dataset loaded", "source", cfg.Buildings.Source, "buildings", dataset.Len())

	// Create geocoding provider using factory pattern based on configuration.
	// Providers that need a key fail here rather than on the first request.
	geoProvider, err := geocoding.NewProvider(geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.Provider.Type),
		APIKey:    cfg.Provider.APIKey,
		RateLimit: cfg.Provider.RateLimit,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("Failed to create geocoding provider: %v", err)
	}

	logger.InfoContext(ctx, "Geocoding provider initialized", "type", cfg.Provider.Type)

	lightScore := service.NewLightScoreService(
		logger,
		geoProvider,
		dataset,
		cfg.Provider.Type, // Provider name for metrics
		appMetrics,
		cfg.SearchRadius,
		cfg.GeocodeTimeout,
		cfg.BuildingsTimeout,
	)

	api := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      server.New(logger, lightScore).Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	// Start the monitoring server in a goroutine to allow main to listen for signals.
	go startMonitoringServer(ctx, logger, reg, health, cfg.HealthPort)

	go func() {
		logger.InfoContext(ctx, "Starting API server", "port", cfg.HTTPPort)
		if err := api.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "API server failed", "error", err)
			stop()
		}
	}()

	// Log that the application has started.
	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	// Wait for the context to be canceled (e.g., by Ctrl+C).
	<-ctx.Done()

	// Log that a shutdown signal has been received.
	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := api.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(shutdownCtx, "API server shutdown failed", "error", err)
	}

	// Log graceful shutdown completion.
	logger.InfoContext(shutdownCtx, "Application stopped gracefully.")
}

// loadDataset builds the in-memory building index from the configured source. The returned
// health check and close function belong to the source's backing store.
func loadDataset(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (*buildings.Dataset, healthCheck, func(), error) {
	if cfg.Buildings.Source == config.SourcePostgres {
		dtb, err := repository.NewDatabase(
			ctx, cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
		)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect to DB: %w", err)
		}

		dataset, err := repository.NewRepository(dtb, logger).LoadDataset(ctx)
		if err != nil {
			dtb.Close()
			return nil, nil, nil, err
		}

		return dataset, dtb.Ping, dtb.Close, nil
	}

	records, err := buildings.LoadCSV(cfg.Buildings.File)
	if err != nil {
		return nil, nil, nil, err
	}
	dataset := buildings.NewDataset(records)

	health := func(context.Context) error {
		if dataset.Len() == 0 {
			return errors.New("building dataset is empty")
		}
		return nil
	}

	return dataset, health, func() {}, nil
}

// startMonitoringServer starts an HTTP server that provides health check and metrics endpoints.
// It listens on the specified port and logs the server's status and any errors encountered.
//
// Parameters:
// - ctx: A context.Context for managing cancellation and timeouts.
// - log: A logger for logging server events and errors.
// - reg: A registry with Prometheus collectors.
// - health: Checks the building store (database ping or dataset presence).
// - port: The port number on which the server will listen.
func startMonitoringServer(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	health healthCheck,
	port int,
) {
	log.InfoContext(ctx, "Starting monitoring server", "port", port)
	monitor := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      monitoringHandler(ctx, log, reg, health),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
	if err := monitor.ListenAndServe(); err != nil {
		log.ErrorContext(ctx, "Monitoring server failed", "error", err)
	}
}

// monitoringHandler serves /healthz and the Prometheus /metrics endpoint.
func monitoringHandler(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	health healthCheck,
) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(writer http.ResponseWriter, _ *http.Request) {
		log.DebugContext(ctx, "Performing health checks...")
		status, body := http.StatusOK, "OK"
		if err := health(ctx); err != nil {
			status, body = http.StatusServiceUnavailable, "Building data unavailable"
		}
		writer.WriteHeader(status)
		_, err := writer.Write([]byte(body))
		if err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}

		log.DebugContext(ctx, "Health checks completed", "status", status)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return mux
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
