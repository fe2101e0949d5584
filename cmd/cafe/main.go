// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/cafe-go/internal/auth"
	"github.com/olegiv/cafe-go/internal/cache"
	"github.com/olegiv/cafe-go/internal/config"
	"github.com/olegiv/cafe-go/internal/handler"
	"github.com/olegiv/cafe-go/internal/logging"
	"github.com/olegiv/cafe-go/internal/metrics"
	"github.com/olegiv/cafe-go/internal/middleware"
	"github.com/olegiv/cafe-go/internal/render"
	"github.com/olegiv/cafe-go/internal/scheduler"
	"github.com/olegiv/cafe-go/internal/service"
	"github.com/olegiv/cafe-go/internal/session"
	"github.com/olegiv/cafe-go/internal/store"
	"github.com/olegiv/cafe-go/internal/version"
	"github.com/olegiv/cafe-go/internal/view"
	"github.com/olegiv/cafe-go/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "cafe - a directory of cafes and the cities they are in\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CAFE_SESSION_SECRET        Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CAFE_DB_PATH               SQLite database path (default: ./data/cafe.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CAFE_SERVER_HOST           Listen host (default: localhost)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CAFE_SERVER_PORT           Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CAFE_ENV                   Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CAFE_LOG_LEVEL             debug|info|warn|error (default: info)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CAFE_REDIS_URL             Redis URL for the city cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CAFE_EVENT_RETENTION_DAYS  Days to keep audit events (default: 90)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CAFE_DO_SEED               Insert sample cafes into an empty database (default: false)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("cafe %s\n", buildInfo())
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func buildInfo() version.Info {
	return version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the events table
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	ctx := context.Background()
	if err := store.Seed(ctx, db, cfg.DoSeed); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	queries := store.New(db)

	sessionManager, stopSessions := session.New(db, cfg.IsDevelopment())
	defer stopSessions()
	slog.Info("session manager initialized")

	cacheConfig := cache.DefaultConfig()
	cacheConfig.RedisURL = cfg.RedisURL
	cacheConfig.Prefix = cfg.CachePrefix
	cacheConfig.DefaultTTL = cfg.CacheTTLDuration()
	appCache, backend := cache.NewWithFallback(cacheConfig, logger)
	defer func() { _ = appCache.Close() }()
	slog.Info("cache initialized", "backend", backend)
	cityCache := cache.NewCityCache(appCache, queries, cfg.CacheTTLDuration())

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	views := view.NewRegistry(renderer)
	if err := handler.RegisterViews(views, queries, cityCache); err != nil {
		return fmt.Errorf("registering views: %w", err)
	}

	eventService := service.NewEventService(db, logger)
	authService := auth.NewService(queries, sessionManager)

	// Background jobs
	sched := scheduler.New(logger)
	jobs := []scheduler.Job{
		scheduler.PruneEventsJob(eventService, cfg.EventRetention(), func(n int64) {
			slog.Info("pruned old events", "count", n)
		}),
		scheduler.RefreshCitiesJob(cityCache),
	}
	for _, job := range jobs {
		if err := sched.Add(job); err != nil {
			return fmt.Errorf("scheduling %s: %w", job.Name, err)
		}
	}
	sched.Start()
	defer sched.Stop()

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	defer loginProtection.Stop()
	signupLimiter := middleware.NewRateLimiter(0.2, 5)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))

	// Endpoints without sessions or CSRF
	healthHandler := handler.NewHealthHandler(db, appVersion)
	r.Get(handler.RouteHealth, healthHandler.Health)
	r.Handle(handler.RouteMetrics, metrics.Handler())

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	r.Handle(handler.RouteStatic, http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	csrfConfig := middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment(), cfg.ServerAddr())
	slog.Info("CSRF protection initialized", "secure", !cfg.IsDevelopment())

	handler.Routes{
		Sessions:        sessionManager,
		Users:           authService,
		Renderer:        renderer,
		Views:           views,
		Home:            handler.NewHomeHandler(renderer, cityCache),
		Cafes:           handler.NewCafesHandler(db, renderer, cityCache, eventService),
		Auth:            handler.NewAuthHandler(authService, renderer, eventService, loginProtection),
		Profile:         handler.NewProfileHandler(db, renderer, eventService),
		CSRF:            middleware.CSRF(csrfConfig),
		LoginProtection: loginProtection,
		SignupLimiter:   signupLimiter,
	}.Mount(r)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", buildInfo().String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
