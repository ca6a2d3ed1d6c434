package main

// @title Place Service API
// @version 1.0.0
// @description Location-data backend for points of interest. Stores places with
// @description geographic coordinates, answers proximity and distance queries using
// @description spherical geometry, geocodes addresses, and synchronizes place data
// @description from the Google Maps Places API into its own store.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/place-service/docs"
	"github.com/place-service/internal/config"
	httpDelivery "github.com/place-service/internal/delivery/http"
	"github.com/place-service/internal/delivery/http/handler"
	"github.com/place-service/internal/infrastructure/googleplaces"
	"github.com/place-service/internal/pkg/logger"
	"github.com/place-service/internal/repository/cache"
	"github.com/place-service/internal/repository/postgres"
	"github.com/place-service/internal/usecase"
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

	log.Info("Starting Place Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("region", cfg.Region.Name),
	)

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

	log.Info("All connections healthy")

	// 6. Initialize repositories and provider client
	placeRepo := postgres.NewPlaceRepository(db)
	syncRepo := cache.NewSyncRepository(redisClient)
	placesProvider := googleplaces.NewClient(&cfg.Google, log)

	log.Info("Repositories initialized")

	// 7. Initialize use cases
	placeUC := usecase.NewPlaceUseCase(placeRepo, placesProvider, cfg.Region, log)
	syncUC := usecase.NewSyncUseCase(placeRepo, placesProvider, syncRepo, cfg.Region, cfg.Sync, log)

	// 8. Initialize HTTP handlers and server
	placeHandler := handler.NewPlaceHandler(placeUC, log)
	syncHandler := handler.NewSyncHandler(syncUC, log)

	server := httpDelivery.NewServer(cfg, log, placeHandler, syncHandler)

	log.Info("HTTP server initialized")

	// 9. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
