// Package main is the entrypoint for the CoverGuard web server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/coverguard/coverguard/internal/cache"
	"github.com/coverguard/coverguard/internal/config"
	"github.com/coverguard/coverguard/internal/handler"
	"github.com/coverguard/coverguard/internal/metrics"
	"github.com/coverguard/coverguard/internal/middleware"
	"github.com/coverguard/coverguard/internal/repository"
	"github.com/coverguard/coverguard/internal/server"
	"github.com/coverguard/coverguard/internal/service"
	"github.com/coverguard/coverguard/internal/session"
	"github.com/coverguard/coverguard/internal/view"
)

func main() {
	ctx := context.Background()

	// Local development reads a .env file; in production the
	// environment is already populated and this is a no-op.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database
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

	// Initialize cache
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

	// Initialize templates
	renderer, err := view.New()
	if err != nil {
		logger.Error("failed to parse templates", "error", err)
		os.Exit(1)
	}

	// Initialize services
	metricsRecorder := metrics.NewNoop()
	sessions := session.NewManager(cacheClient, cfg.SessionTTL)
	profileService := service.NewProfileService(repo, metricsRecorder)
	accountService := service.NewAccountService(repo, metricsRecorder)
	dashboardService := service.NewDashboardService(repo, repo)

	// Initialize handlers
	pageHandler := handler.NewPageHandler(renderer, logger)
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	profileHandler := handler.NewProfileHandler(profileService, renderer, logger)
	accountHandler := handler.NewAccountHandler(accountService, sessions, renderer, logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, renderer, logger)

	// Setup router
	r := setupRouter(routerDeps{
		pages:     pageHandler,
		health:    healthHandler,
		profiles:  profileHandler,
		accounts:  accountHandler,
		dashboard: dashboardHandler,
		sessions:  sessions,
		renderer:  renderer,
		cache:     cacheClient,
		cfg:       cfg,
		logger:    logger,
	})

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

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
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

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

type routerDeps struct {
	pages     *handler.PageHandler
	health    *handler.HealthHandler
	profiles  *handler.ProfileHandler
	accounts  *handler.AccountHandler
	dashboard *handler.DashboardHandler
	sessions  *session.Manager
	renderer  *view.Renderer
	cache     *cache.Cache
	cfg       *config.Config
	logger    *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(deps.logger))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment:      deps.cfg.IsDevelopment(),
		MaxRequestBodySize: deps.cfg.MaxRequestBodySize,
	}))
	r.Use(middleware.MaxBodySize(deps.cfg.MaxRequestBodySize))

	// Health endpoints
	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)

	// Public pages
	r.Get("/", deps.pages.Index)
	r.Get("/form", deps.pages.Form)
	r.Post("/form", deps.profiles.Submit)
	r.Get("/entered-data", deps.profiles.EnteredData)
	r.Get("/edit/{id}", deps.profiles.EditForm)
	r.Post("/update/{id}", deps.profiles.Update)

	// Account pages
	r.Get("/register", deps.accounts.RegisterPage)
	r.Post("/register", deps.accounts.Register)
	r.Get("/login", deps.accounts.LoginPage)
	r.With(middleware.RateLimitLogin(middleware.RateLimitConfig{
		Logger:        deps.logger,
		Cache:         deps.cache,
		Enabled:       deps.cfg.RateLimitLoginEnabled,
		RatePerMinute: deps.cfg.RateLimitLoginPerMin,
		Burst:         deps.cfg.RateLimitLoginBurst,
	})).Post("/login", deps.accounts.Login)
	r.Post("/logout", deps.accounts.Logout)

	// Session-gated pages
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(middleware.SessionConfig{
			Logger:   deps.logger,
			Sessions: deps.sessions,
		}))
		r.Get("/dashboard", deps.dashboard.Dashboard)
	})

	// 404 and 405 handlers
	r.NotFound(handler.NotFoundHandler(deps.logger, deps.renderer))
	r.MethodNotAllowed(handler.MethodNotAllowedHandler(deps.logger, deps.renderer))

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

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
