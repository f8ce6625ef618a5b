// Package app wires the event search service together: configuration,
// logging, tracing, the database pool, search engines, enrichment, analytics
// and the HTTP server, with graceful shutdown of all of it.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/genneg/SwingRadar-sub000/internal/config"
	"github.com/genneg/SwingRadar-sub000/internal/domain"
	"github.com/genneg/SwingRadar-sub000/internal/engine"
	"github.com/genneg/SwingRadar-sub000/internal/engine/fallback"
	"github.com/genneg/SwingRadar-sub000/internal/engine/memory"
	enginepg "github.com/genneg/SwingRadar-sub000/internal/engine/postgres"
	"github.com/genneg/SwingRadar-sub000/internal/enrich"
	"github.com/genneg/SwingRadar-sub000/internal/event"
	httphandler "github.com/genneg/SwingRadar-sub000/internal/handler/http"
	repopg "github.com/genneg/SwingRadar-sub000/internal/repository/postgres"
	"github.com/genneg/SwingRadar-sub000/internal/service"
	"github.com/genneg/SwingRadar-sub000/pkg/assets"
	"github.com/genneg/SwingRadar-sub000/pkg/database"
	"github.com/genneg/SwingRadar-sub000/pkg/health"
	"github.com/genneg/SwingRadar-sub000/pkg/kafka"
	"github.com/genneg/SwingRadar-sub000/pkg/logger"
	"github.com/genneg/SwingRadar-sub000/pkg/middleware"
	"github.com/genneg/SwingRadar-sub000/pkg/tracing"
)

const serviceName = "event-search"

// App is the composed event search service.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	pool            *pgxpool.Pool
	producer        *kafka.Producer
	server          *http.Server
	tracerShutdown  func(context.Context) error
	shutdownTimeout time.Duration
}

// New builds the application from configuration. It connects to Postgres
// (unless the memory backend is selected) and constructs the full handler
// chain, but does not start listening.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.New(serviceName, cfg.LogLevel)
	slog.SetDefault(log)

	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    serviceName,
		ServiceVersion: cfg.ServiceVersion,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.TracingEndpoint,
		SampleRate:     cfg.TracingSampleRate,
		Enabled:        cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	app := &App{
		cfg:             cfg,
		logger:          log,
		tracerShutdown:  tracerShutdown,
		shutdownTimeout: 15 * time.Second,
	}

	healthHandler := health.NewHandler()

	var (
		primary      engine.SearchEngine
		fallbackEng  engine.SearchEngine
		relatedStore enrich.RelatedStore
	)

	switch cfg.SearchBackend {
	case config.BackendMemory:
		primary = memory.New()
		relatedStore = emptyRelatedStore{}
		log.Warn("using in-memory search backend, results are not persisted")

	default:
		dbCfg := database.DefaultPostgresConfig()
		dbCfg.Host = cfg.DBHost
		dbCfg.Port = cfg.DBPort
		dbCfg.User = cfg.DBUser
		dbCfg.Password = cfg.DBPassword
		dbCfg.DBName = cfg.DBName
		dbCfg.SSLMode = cfg.DBSSLMode
		dbCfg.MaxConns = cfg.DBMaxConns
		dbCfg.MinConns = cfg.DBMinConns

		pool, err := database.NewPostgresPool(ctx, &dbCfg, log)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		app.pool = pool

		primary = enginepg.New(pool, log)
		fallbackEng = fallback.New(pool, log)
		relatedStore = repopg.NewRelatedRepository(pool)

		healthHandler.Register("postgres", func(ctx context.Context) error {
			return pool.Ping(ctx)
		})
	}

	var analytics service.AnalyticsPublisher
	if cfg.AnalyticsEnabled {
		producer := kafka.NewProducer(kafka.DefaultProducerConfig(cfg.KafkaBrokers), log)
		app.producer = producer
		analytics = event.NewPublisher(producer, log)

		healthHandler.Register("kafka", producer.Ping)
	}

	rewriter := assets.NewRewriter(cfg.AssetBaseURL, cfg.AssetUploadPrefix)
	enricher := enrich.New(relatedStore, rewriter, log)
	searchService := service.NewSearchService(primary, fallbackEng, enricher, analytics, log)

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins
	corsCfg.Environment = cfg.Environment

	router := httphandler.NewRouter(searchService, healthHandler, corsCfg, log)

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return app, nil
}

// Run starts the HTTP server and blocks until the context is canceled, a
// termination signal arrives, or the server fails.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening",
			slog.String("addr", a.server.Addr),
			slog.String("backend", a.cfg.SearchBackend),
		)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
		return a.Shutdown()
	}
}

// Shutdown stops the HTTP server, flushes the Kafka producer, closes the
// database pool and shuts down the tracer, in that order.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	var errs []error

	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("kafka close: %w", err))
		}
	}

	if a.pool != nil {
		a.pool.Close()
	}

	if a.tracerShutdown != nil {
		if err := a.tracerShutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	a.logger.Info("shutdown complete")
	return nil
}

// emptyRelatedStore backs the memory engine, which carries no venue or price
// relations.
type emptyRelatedStore struct{}

func (emptyRelatedStore) VenuesByEventIDs(context.Context, []string) (map[string]domain.Venue, error) {
	return map[string]domain.Venue{}, nil
}

func (emptyRelatedStore) PricesByEventIDs(context.Context, []string) (map[string]domain.Price, error) {
	return map[string]domain.Price{}, nil
}
