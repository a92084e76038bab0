package main

// @title           Pageant Voting API
// @version         1.0
// @description     Daily voting, paid vote purchases and live results for the pageant.
// @host            localhost:8080
// @BasePath        /api/v1
// @schemes         http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voting-service/internal/api/routes"
	"voting-service/internal/config"
	"voting-service/internal/database"
	"voting-service/internal/events"
	"voting-service/internal/services"
	"voting-service/internal/storage"
	"voting-service/internal/websocket"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	slog.Info("Starting voting server", "environment", cfg.Server.Environment)

	// Initialize database connection
	db, err := database.Open(cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	// Redis is optional: without it results are not cached, logout does not
	// revoke tokens and requests are not rate limited.
	var redisService *services.RedisService
	redisClient, err := database.NewRedisConnection(cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, continuing without it", "error", err)
	} else {
		defer redisClient.Close()
		redisService = services.NewRedisService(redisClient)
	}

	images, err := newImageStore(cfg.Storage)
	if err != nil {
		slog.Error("Failed to initialize image storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}

	// Initialize WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()

	publisher, err := newPublisher(cfg.Events, hub)
	if err != nil {
		slog.Error("Failed to initialize event publisher", "driver", cfg.Events.Driver, "error", err)
		os.Exit(1)
	}

	// Initialize router with all dependencies
	router := routes.NewRouter(routes.Dependencies{
		Config:       cfg,
		DB:           db,
		RedisService: redisService,
		Images:       images,
		Publisher:    publisher,
		Hub:          hub,
	})
	router.SetupRoutes()

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.GetEngine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Server shutting down...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	// Flush pending events and stop the hub
	if err := publisher.Close(); err != nil {
		slog.Error("Failed to close event publisher", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	slog.Info("Server stopped")
}

func newImageStore(cfg config.StorageConfig) (storage.ImageStore, error) {
	if cfg.Driver == config.StorageMinIO {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return storage.NewMinIOStore(ctx, cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOSecure)
	}
	return storage.NewLocalStore(cfg.LocalDir, cfg.PublicBaseURL)
}

// newPublisher always includes the hub so live subscribers see every vote.
func newPublisher(cfg config.EventsConfig, hub *websocket.Hub) (events.Publisher, error) {
	switch cfg.Driver {
	case config.EventsKafka:
		slog.Info("Publishing vote events with kafka-go", "brokers", cfg.Brokers, "topic", cfg.Topic)
		return events.Multi{hub, events.NewKafkaPublisher(cfg.Brokers, cfg.Topic)}, nil
	case config.EventsSarama:
		producer, err := events.NewSaramaPublisher(cfg.Brokers, cfg.Topic)
		if err != nil {
			return nil, err
		}
		slog.Info("Publishing vote events with sarama", "brokers", cfg.Brokers, "topic", cfg.Topic)
		return events.Multi{hub, producer}, nil
	default:
		return events.Multi{hub}, nil
	}
}
