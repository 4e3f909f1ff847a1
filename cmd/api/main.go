// Package main is the entrypoint for the LegalConnect API server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/legalconnect/legalconnect/internal/analytics"
	"github.com/legalconnect/legalconnect/internal/auth"
	"github.com/legalconnect/legalconnect/internal/cache"
	"github.com/legalconnect/legalconnect/internal/config"
	"github.com/legalconnect/legalconnect/internal/metrics"
	"github.com/legalconnect/legalconnect/internal/repository"
	"github.com/legalconnect/legalconnect/internal/server"
	"github.com/legalconnect/legalconnect/internal/service"
	"github.com/legalconnect/legalconnect/internal/webhook"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	if err := repo.Migrate(ctx); err != nil {
		logger.Error("failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("migrations applied")

	// Seed the default admin and sample lawyers on first boot.
	if err := repo.Bootstrap(ctx); err != nil {
		logger.Error("failed to bootstrap data", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	recorder := metrics.NewInMemory()

	authService := service.NewAuthService(repo, tokens, recorder)
	directoryService := service.NewDirectoryService(repo, cacheClient, cfg.LawyerCacheTTL, recorder, logger)
	collectionService := service.NewCollectionService(repo, recorder)
	historyService := service.NewHistoryService(repo)

	var trendsService *service.TrendsService
	var trendWorker *analytics.Worker
	if cfg.AnalyticsEnabled {
		directoryService.SetSearchEventSink(analytics.NewPublisher(cacheClient.Client(), logger, recorder))
		trendsService = service.NewTrendsService(repo)
		trendWorker = analytics.NewWorker(cacheClient.Client(), repo, logger, analytics.NewConsumerID(), recorder)
	}

	var webhookService *service.WebhookService
	var webhookWorker *webhook.Worker
	if cfg.WebhooksEnabled {
		webhookRepo := webhook.NewRepository(repo.Pool())
		directoryService.SetCatalogEventSink(webhook.NewPublisher(webhookRepo, logger))
		webhookService = service.NewWebhookService(webhookRepo)
		webhookWorker = webhook.NewWorker(webhookRepo, logger, recorder)
	}

	router := server.NewRouter(server.RouterDeps{
		Logger:      logger,
		Config:      cfg,
		Tokens:      tokens,
		Cache:       cacheClient,
		Auth:        authService,
		Directory:   directoryService,
		Collections: collectionService,
		History:     historyService,
		Webhooks:    webhookService,
		Trends:      trendsService,
		DBHealth:    repo,
		CacheHealth: cacheClient,
		Metrics:     recorder,
	})

	srv := server.New(
		router,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	if trendWorker != nil {
		go func() {
			if err := trendWorker.Run(workerCtx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("search trend worker exited", "error", err)
			}
		}()
		srv.OnShutdown("analytics worker", trendWorker.Shutdown)
	}

	if webhookWorker != nil {
		go func() {
			if err := webhookWorker.Run(workerCtx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("webhook worker exited", "error", err)
			}
		}()
		srv.OnShutdown("webhook worker", func(context.Context) error {
			stopWorkers()
			return nil
		})
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

// redactURL strips credentials from a connection URL before logging.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		parsed.User = url.User(parsed.User.Username())
	}

	return parsed.String()
}

// sanitizeError replaces any embedded connection URLs in an error
// message with their redacted form.
func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
