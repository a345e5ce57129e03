// Package app provides the main application lifecycle management for the newsdesk service.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/varta-media/newsdesk/internal/api"
	"github.com/varta-media/newsdesk/internal/category"
	"github.com/varta-media/newsdesk/internal/config"
	"github.com/varta-media/newsdesk/internal/database"
	"github.com/varta-media/newsdesk/internal/logger"
	"github.com/varta-media/newsdesk/internal/metrics"
	"github.com/varta-media/newsdesk/internal/pipeline"
	"github.com/varta-media/newsdesk/internal/queue"
	"github.com/varta-media/newsdesk/internal/seo"
	"github.com/varta-media/newsdesk/internal/textutil"
)

const (
	// DefaultShutdownTimeout is the default timeout for graceful shutdown
	DefaultShutdownTimeout = 30 * time.Second
)

// App represents the newsdesk application with all its dependencies
type App struct {
	config      *config.Config
	logger      logger.Logger
	redisClient *redis.Client
	httpServer  *http.Server
	version     string
	configPath  string

	closers []func() error
}

// Options contains configuration for creating a new App
type Options struct {
	ConfigPath string
	Version    string
}

// New creates a new App instance with all dependencies initialized
func New(opts Options) (*App, error) {
	cfg, appLogger, err := loadConfigAndLogger(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	appLogger = appLogger.With(
		logger.String("service", "newsdesk"),
		logger.String("version", opts.Version),
	)

	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		_ = appLogger.Sync()
		return nil, fmt.Errorf("connect to PostgreSQL: %w", err)
	}

	redisClient, err := queue.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		_ = db.Close()
		_ = appLogger.Sync()
		return nil, fmt.Errorf("connect to Redis: %w", err)
	}

	articleRepo := database.NewArticleRepository(db)
	geoRepo := database.NewGeoRepository(db)
	tenantRepo := database.NewTenantRepository(db)
	categoryRepo := database.NewCategoryRepository(db)

	orchestrator := pipeline.NewOrchestrator(pipeline.OrchestratorDeps{
		Articles:   articleRepo,
		Tenants:    tenantRepo,
		Categories: category.NewResolver(categoryRepo, cfg.Publication.CategoryMatchThreshold),
		Scope:      pipeline.NewTenantScopeResolver(tenantRepo),
		Location:   pipeline.NewLocationResolver(geoRepo, appLogger),
		ExternalID: pipeline.NewExternalIDGenerator(articleRepo, time.Now),
		Normalizer: pipeline.NewContentNormalizer(textutil.NewSanitizer(), seo.NewBuilder(), time.Now),
		Enqueuer:   queue.NewRedisEnqueuer(redisClient, cfg.Redis.RewriteQueueKey),
		Metrics:    metrics.New(prometheus.DefaultRegisterer),
		Logger:     appLogger,
		BaseURL:    cfg.Publication.BaseURL,
	})

	router := api.NewRouter(orchestrator, articleRepo, redisClient, cfg, appLogger)

	httpServer := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &App{
		config:      cfg,
		logger:      appLogger,
		redisClient: redisClient,
		httpServer:  httpServer,
		version:     opts.Version,
		configPath:  opts.ConfigPath,
		closers:     []func() error{db.Close},
	}, nil
}

// loadConfigAndLogger loads configuration and creates the logger
func loadConfigAndLogger(configPath string) (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	appLogger, err := logger.NewLogger(cfg.Debug)
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}

	return cfg, appLogger, nil
}

// Run starts the HTTP server and blocks until shutdown
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		a.logger.Info("Starting HTTP server",
			logger.String("address", a.config.Server.Address),
			logger.Bool("debug", a.config.Debug),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	return a.waitForShutdown(ctx, serverErr)
}

// waitForShutdown handles graceful shutdown
func (a *App) waitForShutdown(ctx context.Context, serverErr chan error) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		a.logger.Info("Shutting down gracefully",
			logger.String("signal", sig.String()),
		)
		a.shutdownHTTPServer()
		return nil

	case <-ctx.Done():
		a.shutdownHTTPServer()
		return ctx.Err()

	case err := <-serverErr:
		if err != nil {
			a.logger.Error("Server error", logger.Error(err))
		}
		return err
	}
}

// shutdownHTTPServer gracefully shuts down the HTTP server
func (a *App) shutdownHTTPServer() {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("Server shutdown error", logger.Error(err))
	} else {
		a.logger.Info("HTTP server stopped")
	}
}

// Close cleans up resources
func (a *App) Close() error {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			a.logger.Warn("Failed to close resource", logger.Error(err))
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("Failed to close Redis client", logger.Error(err))
		}
	}
	return a.logger.Sync()
}

// Logger returns the application logger
func (a *App) Logger() logger.Logger {
	return a.logger
}
