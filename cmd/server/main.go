package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"yi_connect_echo/internal/config"
	"yi_connect_echo/internal/handlers"
	"yi_connect_echo/internal/logger"
	"yi_connect_echo/internal/metric"
	authMiddleware "yi_connect_echo/internal/middleware"
	"yi_connect_echo/internal/navigation"
	"yi_connect_echo/internal/services"
)

var version = "v0.0.1-default"

func main() {
	cfg := config.Load()
	logger.SetDefault("yi-connect-server", version, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	// Firebase is optional: without it every protected route redirects to /login
	var verifier handlers.SessionVerifier
	var cookieVerifier authMiddleware.SessionCookieVerifier
	authClient, err := services.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		slog.Warn("firebase initialization failed, auth features disabled", "error", err)
	} else {
		verifier = authClient
		cookieVerifier = authClient
	}

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = services.InitDB(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		if err := services.AutoMigrate(db); err != nil {
			return err
		}
		if cfg.SeedMenus {
			if err := services.SeedMenus(ctx, db); err != nil {
				return err
			}
		}
	} else {
		slog.Warn("DATABASE_URL not set, using the built-in menus")
	}

	var cache *services.RedisCache
	if cfg.RedisURL != "" {
		cache, err = services.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer cache.Close()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	transitions := metric.NewCounter(registry, "nav_transitions_total", "Navigation state transitions by variant and action.", "variant", "action")

	nav := services.NewNavigationService(
		services.NewMenuSource(db, cache, cfg.MenuCacheTTL),
		stateRepository(db, cache, cfg),
		cfg.NavPrimarySize,
		transitions,
	)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = authMiddleware.CustomErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Static("/static", "web/static")

	authHandler := handlers.NewAuthHandler(verifier, nav, db, cfg)
	dashboardHandler := handlers.NewDashboardHandler(nav)
	navHandler := handlers.NewNavHandler(nav)

	// Public routes
	e.GET("/login", authHandler.LoginPage)
	e.POST("/auth/login", authHandler.HandleLogin)
	e.POST("/auth/logout", authHandler.HandleLogout)
	e.GET("/metrics", echo.WrapHandler(metric.Handler(registry)))
	e.GET("/healthz", healthz(db, cache))

	// Protected routes
	protected := e.Group("")
	protected.Use(authMiddleware.RequireAuth(cookieVerifier))
	protected.GET("/dashboard", dashboardHandler.Dashboard)
	navHandler.Register(protected.Group("/nav"))

	// Redirect root to dashboard (or login if not authenticated)
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusTemporaryRedirect, "/dashboard")
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server starting", "port", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// stateRepository prefers Redis, then PostgreSQL, then process memory
func stateRepository(db *gorm.DB, cache *services.RedisCache, cfg config.Config) navigation.Repository {
	switch {
	case cache != nil:
		return services.NewRedisStateRepository(cache, cfg.NavStateTTL)
	case db != nil:
		return services.NewDBStateRepository(db)
	default:
		slog.Warn("no storage configured, navigation state is kept in memory")
		return navigation.NewMemoryRepository()
	}
}

func healthz(db *gorm.DB, cache *services.RedisCache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		status := map[string]string{"status": "ok"}
		code := http.StatusOK

		if db != nil {
			if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
				status["database"] = "unavailable"
				code = http.StatusServiceUnavailable
			}
		}
		if cache != nil {
			if err := cache.Ping(ctx); err != nil {
				status["redis"] = "unavailable"
				code = http.StatusServiceUnavailable
			}
		}
		if code != http.StatusOK {
			status["status"] = "degraded"
		}
		return c.JSON(code, status)
	}
}
