package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/place-service/internal/config"
	"github.com/place-service/internal/infrastructure/googleplaces"
	"github.com/place-service/internal/pkg/logger"
	"github.com/place-service/internal/repository/cache"
	"github.com/place-service/internal/repository/postgres"
	"github.com/place-service/internal/usecase"
	"github.com/place-service/internal/worker"
	syncworker "github.com/place-service/internal/worker/sync"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Place Service sync worker")

	if !cfg.Sync.WorkerEnabled {
		log.Info("Sync worker disabled by configuration, exiting")
		return
	}

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	// 6. Wire the synchronization use case
	placeRepo := postgres.NewPlaceRepository(db)
	syncRepo := cache.NewSyncRepository(redisClient)
	placesProvider := googleplaces.NewClient(&cfg.Google, log)

	syncUC := usecase.NewSyncUseCase(placeRepo, placesProvider, syncRepo, cfg.Region, cfg.Sync, log)

	// 7. Run the worker under the manager
	manager := worker.NewManager(log)
	manager.Register(syncworker.NewWorker(syncUC, cfg.Sync.Interval, log))

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	if err := manager.Start(workerCtx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down sync worker...")

	workerCancel()
	if err := manager.Stop(); err != nil {
		log.Error("Worker shutdown error", zap.Error(err))
	}

	log.Info("Sync worker stopped")
}
