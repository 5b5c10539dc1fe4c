package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"task_tracker/internal/config"
	"task_tracker/internal/db"
	httpServer "task_tracker/internal/http"
	"task_tracker/internal/http/middleware"
	"task_tracker/internal/logger"
	"task_tracker/internal/migrations"
	"task_tracker/internal/repository"
	"task_tracker/internal/service"
	"task_tracker/internal/ws"
)

var version = "dev"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	var store repository.TaskStore
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		logger.Warn("using in-memory storage, tasks are lost on restart")
		store = repository.NewMemoryTaskRepository()
	default:
		dbPool := db.Connect(cfg.DatabaseURL)
		defer dbPool.Close()

		if cfg.AutoMigrate {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			applied, err := migrations.Apply(ctx, dbPool)
			cancel()
			if err != nil {
				logger.Fatal("failed to apply migrations", "error", err)
			}
			logger.Info("migrations applied", "files", applied)
		}
		store = repository.NewTaskRepository(dbPool)
	}

	redisClient := middleware.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if redisClient != nil {
		defer redisClient.Close()
	}

	hub := ws.NewHub()
	defer hub.Close()

	tasks := service.NewTaskService(store, hub)

	srv := &http.Server{
		Addr: ":" + cfg.AppPort,
		Handler: httpServer.NewHandler(httpServer.RouterConfig{
			Tasks:              tasks,
			Hub:                hub,
			Redis:              redisClient,
			Version:            version,
			RateLimit:          cfg.APIRateLimit,
			RateWindow:         cfg.APIRateWindow,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			WSAllowedOrigin:    cfg.WSAllowedOrigin,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "storage", cfg.StorageDriver, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
