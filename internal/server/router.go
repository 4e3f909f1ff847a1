package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/legalconnect/legalconnect/internal/auth"
	"github.com/legalconnect/legalconnect/internal/cache"
	"github.com/legalconnect/legalconnect/internal/config"
	"github.com/legalconnect/legalconnect/internal/handler"
	"github.com/legalconnect/legalconnect/internal/metrics"
	"github.com/legalconnect/legalconnect/internal/middleware"
	"github.com/legalconnect/legalconnect/internal/service"
)

// RouterDeps bundles everything the HTTP router needs.
type RouterDeps struct {
	Logger      *slog.Logger
	Config      *config.Config
	Tokens      *auth.TokenManager
	Cache       *cache.Cache
	Auth        *service.AuthService
	Directory   *service.DirectoryService
	Collections *service.CollectionService
	History     *service.HistoryService
	Webhooks    *service.WebhookService
	Trends      *service.TrendsService
	DBHealth    handler.HealthChecker
	CacheHealth handler.HealthChecker
	Metrics     metrics.Snapshotter
}

// NewRouter builds the chi router with the full middleware chain and
// route table.
func NewRouter(d RouterDeps) *chi.Mux {
	healthHandler := handler.NewHealthHandler(d.DBHealth, d.CacheHealth)
	metricsHandler := handler.NewMetricsHandler(d.Metrics)
	authHandler := handler.NewAuthHandler(d.Auth, d.Logger)
	lawyerHandler := handler.NewLawyerHandler(d.Directory, d.Logger)
	collectionHandler := handler.NewCollectionHandler(d.Collections, d.Logger)
	historyHandler := handler.NewHistoryHandler(d.History, d.Logger)

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = d.Config.GetCORSAllowedOrigins()

	rateLimitCfg := middleware.RateLimitConfig{
		Logger:  d.Logger,
		Cache:   d.Cache,
		Enabled: d.Config.RateLimitEnabled,
		RPS:     d.Config.RateLimitRPS,
		Burst:   d.Config.RateLimitBurst,
	}

	requireAuth := middleware.Auth(d.Logger, d.Tokens)
	requireAdmin := middleware.RequireAdmin(d.Logger)
	rateLimit := middleware.RateLimit(rateLimitCfg)

	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Recoverer(d.Logger))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment:      d.Config.IsDevelopment(),
		MaxRequestBodySize: d.Config.MaxRequestBodySize,
	}))
	r.Use(middleware.BodyLimit(d.Config.MaxRequestBodySize))
	r.Use(middleware.CORS(corsCfg))

	// Probes and metrics stay outside /api and skip rate limiting.
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	r.Get("/metrics", metricsHandler.Metrics)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Health)

		r.Route("/auth", func(r chi.Router) {
			// Register and login are anonymous; throttled per IP.
			r.With(rateLimit).Post("/register", authHandler.Register)
			r.With(rateLimit).Post("/login", authHandler.Login)
			r.With(requireAuth, rateLimit).Get("/me", authHandler.Me)
		})

		r.Route("/lawyers", func(r chi.Router) {
			r.With(rateLimit).Get("/", lawyerHandler.List)
			r.With(rateLimit).Get("/{id}", lawyerHandler.Get)

			// Catalog writes are admin only.
			r.With(requireAuth, requireAdmin, rateLimit).Post("/", lawyerHandler.Create)
			r.With(requireAuth, requireAdmin, rateLimit).Put("/{id}", lawyerHandler.Update)
			r.With(requireAuth, requireAdmin, rateLimit).Delete("/{id}", lawyerHandler.Delete)
		})

		r.Route("/shortlist", func(r chi.Router) {
			r.Use(requireAuth, rateLimit)
			r.Get("/", collectionHandler.ListShortlist)
			r.Post("/{lawyerId}", collectionHandler.AddToShortlist)
			r.Delete("/{lawyerId}", collectionHandler.RemoveFromShortlist)
		})

		r.Route("/comparison", func(r chi.Router) {
			r.Use(requireAuth, rateLimit)
			r.Get("/", collectionHandler.ListComparison)
			r.Delete("/", collectionHandler.ClearComparison)
			r.Post("/{lawyerId}", collectionHandler.AddToComparison)
			r.Delete("/{lawyerId}", collectionHandler.RemoveFromComparison)
		})

		r.Route("/history", func(r chi.Router) {
			r.Use(requireAuth, rateLimit)
			r.Get("/", historyHandler.List)
			r.Post("/", historyHandler.Save)
		})

		// Admin-only surfaces, mounted when their backing service is
		// configured.
		if d.Webhooks != nil {
			webhookHandler := handler.NewWebhookHandler(d.Webhooks, d.Logger)
			r.Route("/webhooks", func(r chi.Router) {
				r.Use(requireAuth, requireAdmin, rateLimit)
				r.Get("/", webhookHandler.List)
				r.Post("/", webhookHandler.Create)
				r.Delete("/{id}", webhookHandler.Delete)
			})
		}

		if d.Trends != nil {
			analyticsHandler := handler.NewAnalyticsHandler(d.Trends, d.Logger)
			r.Route("/analytics", func(r chi.Router) {
				r.Use(requireAuth, requireAdmin, rateLimit)
				r.Get("/trends", analyticsHandler.Trends)
			})
		}
	})

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r
}
