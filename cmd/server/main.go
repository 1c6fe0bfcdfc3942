package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tastyhub/ordering-service/internal/cache"
	"github.com/tastyhub/ordering-service/internal/config"
	"github.com/tastyhub/ordering-service/internal/db"
	"github.com/tastyhub/ordering-service/internal/db/repository"
	"github.com/tastyhub/ordering-service/internal/router"
	"github.com/tastyhub/ordering-service/internal/service"
	"github.com/tastyhub/ordering-service/internal/websockets"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	database, err := db.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run database migrations
	if err := database.Migrate(cfg.Database); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	repos := repository.NewRepositories(database)

	// Optional menu cache
	var menuCache service.MenuListCache
	if cfg.Redis.Address != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ttl := time.Duration(cfg.Redis.TTLSeconds) * time.Second
		if ttl <= 0 {
			ttl = 5 * time.Minute
		}
		menuCache = cache.NewMenuCache(client, ttl)
		log.Printf("Menu cache enabled (redis %s)", cfg.Redis.Address)
	}

	authService := service.NewAuthService(repos.User, service.JWTConfig{
		Secret:    cfg.JWT.Secret,
		ExpiresIn: cfg.JWT.ExpiresIn,
	})

	// Bootstrap the admin account configured in the config file
	bootstrapCtx, bootstrapCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authService.EnsureAdmin(bootstrapCtx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		bootstrapCancel()
		log.Fatalf("Failed to bootstrap admin account: %v", err)
	}
	bootstrapCancel()

	// Initialize WebSocket hub
	hub := websockets.NewHub()
	go hub.Run()

	// Initialize router
	r := router.New(router.Services{
		Menu:     service.NewMenuService(repos.Menu, menuCache),
		Order:    service.NewOrderService(repos.Order),
		Settings: service.NewSettingsService(repos.Settings),
		Auth:     authService,
		Health:   database,
		Hub:      hub,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited properly")
}
