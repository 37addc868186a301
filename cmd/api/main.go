package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskapp/internal/adapter/cache"
	"taskapp/internal/adapter/database/postgres"
	postgresrepo "taskapp/internal/adapter/database/postgres/repository"
	"taskapp/internal/adapter/database/sqlite"
	sqliterepo "taskapp/internal/adapter/database/sqlite/repository"
	"taskapp/internal/adapter/http/handler"
	"taskapp/internal/adapter/imaging"
	"taskapp/internal/adapter/notification"
	"taskapp/internal/core/port"
	"taskapp/internal/core/service"
	"taskapp/internal/telemetry"
	"taskapp/pkg/api"
	"taskapp/pkg/auth"
	"taskapp/pkg/config"
	"taskapp/pkg/logging"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()

	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger, err := logging.NewLogger("taskapp")

	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	defer logger.Sync()

	container, err := telemetry.NewContainer(telemetry.Config{
		ServiceName:    "taskapp",
		ServiceVersion: "1.0.0",
		MetricsPort:    cfg.MetricsPort,
		OTLPEndpoint:   cfg.OTLPEndpoint,
	}, slog.Default())

	if err != nil {
		log.Fatal("Failed to initialize telemetry:", err)
	}

	defer container.Shutdown(ctx)

	userRepo, taskRepo, closeDB, err := buildRepositories(ctx, cfg)

	if err != nil {
		log.Fatal("Failed to open database:", err)
	}

	defer closeDB()

	avatarCache, err := buildCache(ctx, cfg, container.AppMetrics)

	if err != nil {
		log.Fatal("Failed to connect cache:", err)
	}

	defer avatarCache.Close()

	tokens := auth.New(cfg.JWTSecret)

	accountService := service.NewAccountService(
		userRepo,
		taskRepo,
		tokens,
		buildNotifier(cfg),
		imaging.NewResizer(),
		avatarCache,
	)
	taskService := service.NewTaskService(taskRepo)

	router := api.SetupRouter(api.HandlersConfig{
		UserHandler: handler.NewUserHandler(accountService, logger, container.AppMetrics),
		TaskHandler: handler.NewTaskHandler(taskService, logger, container.AppMetrics),
		Tokens:      tokens,
		Users:       userRepo,
	}, container.AppMetrics, logger, cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		slog.Info("Server starting",
			"port", cfg.Port,
			"environment", cfg.Environment,
			"database_driver", cfg.DatabaseDriver,
			"rate_limit_enabled", cfg.RateLimitEnabled)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
}

func buildRepositories(ctx context.Context, cfg *config.Config) (port.UserRepository, port.TaskRepository, func() error, error) {
	if cfg.DatabaseDriver == "postgres" {
		db, err := postgres.NewDB(ctx, cfg.DatabaseURL, cfg.MigrationsPath)

		if err != nil {
			return nil, nil, nil, err
		}

		closer := func() error {
			db.Close()
			return nil
		}

		return postgresrepo.NewUserRepository(db), postgresrepo.NewTaskRepository(db), closer, nil
	}

	db, err := sqlite.Open(cfg.DatabasePath, cfg.MigrationsPath)

	if err != nil {
		return nil, nil, nil, err
	}

	return sqliterepo.NewUserRepository(db), sqliterepo.NewTaskRepository(db), db.Close, nil
}

func buildCache(ctx context.Context, cfg *config.Config, metrics *telemetry.AppMetrics) (port.CacheRepository, error) {
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisAddr)

		if err != nil {
			return nil, err
		}

		return cache.NewInstrumentedCache("avatar_redis", redisCache, metrics), nil
	}

	return cache.NewInstrumentedCache("avatar_memory", cache.NewMemoryCache(), metrics), nil
}

func buildNotifier(cfg *config.Config) port.Notifier {
	if cfg.PostmarkAPIKey != "" {
		return notification.NewPostmarkClient(cfg.PostmarkAPIKey, cfg.PostmarkFrom)
	}

	return notification.NewNoopNotifier()
}
