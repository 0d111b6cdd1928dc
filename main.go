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

	"jobverse/config"
	"jobverse/internal/app"
	"jobverse/internal/database"
	"jobverse/internal/server"
	"jobverse/internal/uploads"

	_ "jobverse/docs" // Generated by swag init

	"github.com/go-playground/validator/v10"
)

// @title           JobVerse API
// @version         1.0
// @description     Job board REST API: auth, job catalog, applications and admin dashboard.

// @host      localhost:8080
// @BasePath  /api
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		// The stats endpoints recompute on every request without Redis.
		log.Printf("WARN: Failed to connect to Redis: %v. Continuing without stats caching.", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	dbPool, err := database.NewConnectionPool(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	store, err := uploads.NewStore(cfg.Uploads.Dir)
	if err != nil {
		log.Fatalf("Failed to initialize upload store: %v", err)
	}

	validate := validator.New()

	application := app.New(cfg, dbPool, redisClient, validate, store)

	srv := server.NewServer(application)

	// --- Graceful Shutdown Handling ---
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
	log.Println("Application gracefully stopped.")
}
