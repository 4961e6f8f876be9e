package main

import (
	"context"
	"errors"
	"homefinder/internal/config"
	"homefinder/internal/database"
	"homefinder/internal/handlers"
	"homefinder/internal/metrics"
	"homefinder/internal/ratelimit"
	"homefinder/internal/scheduler"
	"homefinder/internal/search"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	// Load configuration
	configPath := config.GetEnv("CONFIG_PATH", "config.yaml")
	appConfig, err := config.LoadConfig(configPath)
	if err != nil {
		slog.Error("failed to load configuration", "path", configPath, "error", err)
		os.Exit(1)
	}
	setupLogging(appConfig.Logging)
	slog.Info("configuration loaded", "path", configPath)

	// Open the store
	dialector, err := database.Dialector(appConfig.Database)
	if err != nil {
		slog.Error("invalid database configuration", "error", err)
		os.Exit(1)
	}
	store, err := database.NewGormDB(dialector, database.Options{
		StrictReferences: appConfig.Integrity.Strict(),
		LogSQL:           appConfig.Logging.SQL,
	})
	if err != nil {
		slog.Error("failed to connect to database", "dialect", dialector.Name(), "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("database connected", "dialect", dialector.Name(), "foreign_keys", appConfig.Integrity.ForeignKeys)

	if err := store.InitSchema(); err != nil {
		slog.Error("failed to initialize schema", "error", err)
		os.Exit(1)
	}

	seeded, err := store.SeedPropertyTypes(context.Background())
	if err != nil {
		slog.Error("failed to seed property types", "error", err)
		os.Exit(1)
	}
	if seeded {
		slog.Info("property types seeded")
	}

	// Initialize rate limiter
	rateLimiter := ratelimit.NewRateLimiter(
		appConfig.RateLimit.RequestsPerMinute,
		appConfig.RateLimit.RequestsPerHour,
		appConfig.RateLimit.RequestsPerDay,
		appConfig.RateLimit.Enabled,
	)
	slog.Info("rate limiter initialized",
		"per_minute", appConfig.RateLimit.RequestsPerMinute,
		"per_hour", appConfig.RateLimit.RequestsPerHour,
		"per_day", appConfig.RateLimit.RequestsPerDay,
		"enabled", appConfig.RateLimit.Enabled,
	)

	handlerOpts := handlers.Options{Limiter: rateLimiter}
	var (
		appScheduler *scheduler.Scheduler
		searchClient *search.SearchClient
	)

	// Search mirror is optional
	if msCfg := appConfig.Search.Meilisearch; msCfg.Enabled {
		searchClient = search.NewSearchClient(
			config.GetEnvOrConfig(msCfg.Host, "MEILISEARCH_HOST", "http://meilisearch:7700"),
			config.GetEnvOrConfig(msCfg.APIKey, "MEILISEARCH_KEY", ""),
			msCfg.Index,
		)
		if !searchClient.Healthy() {
			slog.Warn("search: meilisearch is not reachable yet")
		}
		if err := searchClient.InitIndex(); err != nil {
			slog.Warn("search: failed to initialize index", "error", err)
		}
		handlerOpts.Indexer = searchClient

		appScheduler = scheduler.NewScheduler(appConfig.Scheduler, func(ctx context.Context) (int, error) {
			return searchClient.Reindex(ctx, store)
		})
		if err := appScheduler.Start(); err != nil {
			slog.Warn("scheduler: failed to start", "error", err)
		}
		defer appScheduler.Stop()
	}

	// Setup Gin router
	r := gin.Default()
	r.Use(handlers.RequestID())

	if appConfig.Metrics.Enabled {
		appMetrics := metrics.New()
		r.Use(appMetrics.Middleware())
		r.GET(appConfig.Metrics.Path, gin.WrapH(appMetrics.Handler()))
		handlerOpts.Metrics = appMetrics
	}

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:  appConfig.Server.AllowOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:  []string{"Origin", "Content-Type", handlers.RequestIDHeader},
		ExposeHeaders: []string{handlers.RequestIDHeader},
	}
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	}
	r.Use(cors.New(corsConfig))

	handlers.NewHandler(store, handlerOpts).Register(r)
	adminHandler := handlers.NewAdminHandler(store, appScheduler, rateLimiter)
	if searchClient != nil {
		adminHandler.WithSearchStatus(searchClient)
	}
	adminHandler.Register(r)

	port := config.GetEnv("PORT", appConfig.Server.Port)
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
	slog.Info("server exited")
}

// setupLogging installs the default slog logger
func setupLogging(cfg config.LoggingConfig) {
	opts := &slog.HandlerOptions{Level: logLevel(cfg.Level)}

	var handler slog.Handler
	switch cfg.Format {
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}

func logLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
