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

	httpapi "github.com/aussiebroadwan/mibanco/internal/banco/http"
	"github.com/aussiebroadwan/mibanco/internal/banco/service"
	"github.com/aussiebroadwan/mibanco/internal/banco/store"
	"github.com/aussiebroadwan/mibanco/internal/banco/store/drivers/mongo"
	"github.com/aussiebroadwan/mibanco/internal/banco/store/drivers/postgres"
	"github.com/aussiebroadwan/mibanco/internal/banco/store/drivers/sqlite"
	"github.com/aussiebroadwan/mibanco/pkg/cryptox"
	"github.com/aussiebroadwan/mibanco/pkg/httpx"
	"github.com/aussiebroadwan/mibanco/pkg/metrics"
	"github.com/aussiebroadwan/mibanco/pkg/rabbitmq"
	"github.com/aussiebroadwan/mibanco/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

const (
	// BuildVersion is overridden at build time with -ldflags.
	BuildVersion = "v0.1.0"
)

// Application holds the banking service and everything it owns.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	redis    *redis.Client // nil without REDIS_URL
	limiters httpx.LimiterBackend
	events   rabbitmq.Publisher
	registry *prometheus.Registry
	metrics  *metrics.Collector

	userService        *service.UserService
	beneficiaryService *service.BeneficiaryService
	transferService    *service.TransferService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with every dependency connected. Optional
// backends (redis, rabbitmq) degrade to in-process fallbacks when they are
// not configured or cannot be reached.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "banco-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := cryptox.LoadPepper(cfg.PepperFile); err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.limiters = app.initRateLimitBackend()
	app.initEvents()
	app.initMetrics()
	app.initServices()

	if err := app.initHTTP(); err != nil {
		app.closeBackends()
		return nil, err
	}

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	info := app.db.Info()
	app.logger.Info("banco service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"store", info.Driver,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.closeBackends()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests, then closes the backends.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down banco service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.closeBackends(); err != nil {
		return err
	}

	app.logger.Info("banco service stopped")
	return nil
}

// closeBackends releases the optional backends first and the store last.
// Only a store failure is returned.
func (app *Application) closeBackends() error {
	if app.events != nil {
		if err := app.events.Close(); err != nil {
			app.logger.Warn("error closing event producer", "error", err)
		}
	}
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Warn("error closing redis client", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}
	return nil
}

// initDatabase opens the configured store and applies its migrations.
func (app *Application) initDatabase() error {
	db, err := openStore(app.cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize %s database: %w", app.cfg.StoreDriver, err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	info := db.Info()
	app.logger.Info("database ready",
		"driver", info.Driver,
		"host", info.Host,
		"name", info.Name,
	)
	return nil
}

func openStore(cfg Config) (store.Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.DBConnTimeout)
	defer cancel()

	switch cfg.StoreDriver {
	case "sqlite":
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.DatabaseFile)
		return sqlite.NewStore(dsn)

	case "postgres":
		if cfg.PostgresURL == "" {
			return nil, errors.New("POSTGRES_URL is required for the postgres driver")
		}
		return postgres.NewStore(ctx, cfg.PostgresURL, postgres.Options{
			MaxConns: int32(cfg.DBPoolSize), // #nosec G115 small operator value
		})

	case "mongo":
		return mongo.NewStore(ctx, cfg.MongoURI, cfg.DBName, mongo.Options{
			MaxPoolSize: uint64(max(cfg.DBPoolSize, 0)), // #nosec G115
		})

	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

// initRateLimitBackend connects to redis when REDIS_URL is set. The limiter
// falls back to per-process memory when redis is absent or unreachable.
func (app *Application) initRateLimitBackend() httpx.LimiterBackend {
	if app.cfg.RedisURL == "" {
		return httpx.MemoryBackend()
	}

	opts, err := redis.ParseURL(app.cfg.RedisURL)
	if err != nil {
		app.logger.Warn("invalid REDIS_URL, using in-memory rate limits", "error", err)
		return httpx.MemoryBackend()
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		app.logger.Warn("redis unreachable, using in-memory rate limits", "error", err)
		return httpx.MemoryBackend()
	}

	app.redis = client
	app.logger.Info("rate limits shared through redis", "addr", opts.Addr)
	return httpx.RedisBackend(client, app.cfg.RateLimitPrefix)
}

// initEvents connects the event producer, or discards events when
// RABBITMQ_URL is unset or the broker cannot be reached.
func (app *Application) initEvents() {
	if app.cfg.RabbitMQURL == "" {
		app.events = rabbitmq.Nop{Log: app.logger}
		return
	}

	producer, err := rabbitmq.NewEventProducer(app.cfg.RabbitMQURL, app.cfg.EventsExchange, app.logger)
	if err != nil {
		app.logger.Warn("rabbitmq unavailable, events will be discarded", "error", err)
		app.events = rabbitmq.Nop{Log: app.logger}
		return
	}

	app.events = producer
	app.logger.Info("publishing domain events", "exchange", app.cfg.EventsExchange)
}

func (app *Application) initMetrics() {
	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = metrics.NewCollector(app.registry)
}

func (app *Application) initServices() {
	app.userService = &service.UserService{
		Store:   app.db,
		Metrics: app.metrics,
	}
	app.beneficiaryService = &service.BeneficiaryService{
		Store:   app.db,
		Events:  app.events,
		Metrics: app.metrics,
	}
	app.transferService = &service.TransferService{
		Store:   app.db,
		Events:  app.events,
		Metrics: app.metrics,
	}
}

// initHTTP builds the router and the server.
func (app *Application) initHTTP() error {
	proxies, err := httpx.ParseTrustedProxies(app.cfg.TrustedProxies)
	if err != nil {
		return fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
	}

	opts := httpapi.Options{
		AllowedOrigins:     app.cfg.AllowedOrigins,
		CompressionMinSize: app.cfg.CompressionMinSize,
		Limiters:           app.limiters,
		TrustedProxies:     proxies,
		Metrics:            app.metrics,
	}
	if app.cfg.MetricsEnabled {
		opts.Gatherer = app.registry
	}

	router, err := httpapi.NewRouter(app.db, BuildVersion, app.logger, opts)
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}

	router.UserService = app.userService
	router.BeneficiaryService = app.beneficiaryService
	router.TransferService = app.transferService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}
