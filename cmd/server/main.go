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
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"examforge/internal/cache"
	"examforge/internal/config"
	"examforge/internal/repository"
	"examforge/internal/service"
	"examforge/internal/transport/rest"
	"examforge/internal/transport/ws"
)

// @title Examforge Authoring API
// @version 1.0
// @description Admin authoring service for composite exam content
// @host localhost:8080
// @BasePath /v1
func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()
	log.Printf("Backend base URL: %s", cfg.BackendBaseURL)
	log.Printf("Media upload URL: %s (preset=%s)", cfg.MediaUploadURL, cfg.MediaPreset)

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database("examforge")

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket notification hub
	wsHub := ws.NewHub()
	log.Println("Notification hub started")

	// Initialize repositories and caches
	recordRepo := repository.NewSubmissionRecordRepo(db)
	draftCache := cache.NewDraftCache(rdb)

	// Initialize external clients
	backendClient := service.NewBackendClient(cfg.BackendBaseURL)
	mediaClient := service.NewMediaClient(cfg.MediaUploadURL, cfg.MediaPreset)

	// Initialize services (wsHub implements service.Broadcaster)
	authSvc := service.NewAuthService(cfg.AdminUsername, cfg.AdminPassword, cfg.JWTSecret)
	draftSvc := service.NewDraftService(draftCache, wsHub)
	uploadSvc := service.NewUploadService(mediaClient, draftCache, wsHub)
	submitSvc := service.NewSubmissionService(backendClient, draftCache, recordRepo, wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:   authSvc,
		DraftService:  draftSvc,
		UploadService: uploadSvc,
		SubmitService: submitSvc,
		WSHub:         wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST/GET /v1/drafts")
		log.Println("  POST /v1/drafts/{id}/advance|retreat|submit")
		log.Println("  POST /v1/drafts/{id}/assets/{slot}")
		log.Println("  WS  /v1/ws/drafts/{id}")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
