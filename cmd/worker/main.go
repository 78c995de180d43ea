package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yi_connect_echo/internal/config"
	"yi_connect_echo/internal/logger"
	"yi_connect_echo/internal/services"
	"yi_connect_echo/internal/tasks"
)

var version = "v0.0.1-default"

const concurrency = 4

func main() {
	cfg := config.Load()
	logger.SetDefault("yi-connect-worker", version, cfg.LogLevel)

	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL not set")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := services.InitDB(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := services.AutoMigrate(db); err != nil {
		slog.Error("failed to run database migrations", "error", err)
		os.Exit(1)
	}

	deps := tasks.Deps{DB: db}
	if cfg.RedisURL != "" {
		cache, err := services.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer cache.Close()
		deps.Cache = cache
	}

	tasks.DefineTasks(tasks.GlobalRegistry)
	runner := tasks.NewRunner(deps, tasks.GlobalRegistry, concurrency)

	slog.Info("worker started", "interval", cfg.WorkerInterval, "tasks", tasks.GlobalRegistry.Names())

	ticker := time.NewTicker(cfg.WorkerInterval)
	defer ticker.Stop()

	// run once at startup, then on every tick
	tick(ctx, runner)
	for {
		select {
		case <-ticker.C:
			tick(ctx, runner)
		case <-ctx.Done():
			slog.Info("shutting down worker")
			return
		}
	}
}

func tick(ctx context.Context, runner *tasks.Runner) {
	if err := runner.RunDue(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("processing scheduled tasks", "error", err)
	}
}
