package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"anoa.com/mentoria/internal/bootstrap"
	"anoa.com/mentoria/internal/config"
	"anoa.com/mentoria/internal/server"
	"anoa.com/mentoria/pkg/cache"
	"anoa.com/mentoria/pkg/database"
	"anoa.com/mentoria/pkg/logger"
	"anoa.com/mentoria/pkg/response"
	"anoa.com/mentoria/pkg/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	response.Configure(zlog, cfg.IsDevelopment())

	db, err := database.Connect(database.Options{
		Driver:     cfg.DBDriver,
		DSN:        cfg.DatabaseURL,
		SQLitePath: cfg.SQLitePath,
	})
	if err != nil {
		zlog.Fatal("failed to connect database", zap.Error(err))
	}
	if err := bootstrap.Migrate(db); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}
	if cfg.SeedAdmin {
		if err := bootstrap.SeedAdminUser(db, zlog); err != nil {
			zlog.Fatal("failed to seed admin user", zap.Error(err))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		zlog.Warn("redis unavailable, continuing without cache", zap.Error(err))
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var fileStorage storage.FileStorage
	if cfg.CloudinaryURL != "" || os.Getenv("CLOUDINARY_CLOUD_NAME") != "" {
		fileStorage, err = storage.NewCloudinaryStorage(cfg.CloudinaryURL)
		if err != nil {
			zlog.Warn("file storage disabled", zap.Error(err))
			fileStorage = nil
		}
	} else {
		zlog.Warn("file storage not configured, uploads are disabled")
	}

	srv := server.NewServer(cfg, db, redisClient, fileStorage, zlog)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	srv.StartWorkers(workerCtx)

	httpServer := srv.HTTPServer(":" + cfg.Port)
	go func() {
		zlog.Info("server listening", zap.String("addr", httpServer.Addr), zap.String("env", cfg.AppEnv))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server exited with error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}

	cancelWorkers()
	srv.WaitWorkers()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
