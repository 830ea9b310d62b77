package main

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

	"github.com/gin-gonic/gin"

	"github.com/edusync-platform/school-service/internal/config"
	"github.com/edusync-platform/school-service/internal/events"
	"github.com/edusync-platform/school-service/internal/handlers"
	"github.com/edusync-platform/school-service/internal/repositories/postgres"
	"github.com/edusync-platform/school-service/internal/services"
	"github.com/edusync-platform/school-service/internal/sessions"
	"github.com/edusync-platform/school-service/internal/utils"
	"github.com/edusync-platform/school-service/internal/validator"
	"github.com/edusync-platform/school-service/pkg"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	logger := utils.NewSlogLogger(slogLogger)

	// Initialize database
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Session store: Redis when configured, in-process otherwise
	var sessionStore sessions.Store
	if cfg.Redis.URL != "" {
		redisClient, err := pkg.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize Redis: %v", err)
		}
		sessionStore = sessions.NewRedisStore(redisClient, cfg.Session.TTL)
		logger.Info("Using Redis session store")
	} else {
		sessionStore = sessions.NewMemoryStore(cfg.Session.TTL)
		logger.Info("Using in-memory session store")
	}

	// Event publisher: Kafka when brokers are configured
	var publisher events.EventPublisher
	if len(cfg.Events.KafkaBrokers) > 0 {
		publisher, err = events.NewKafkaPublisher(cfg.Events.KafkaBrokers, cfg.Events.Topic, slogLogger)
		if err != nil {
			log.Fatalf("Failed to initialize Kafka publisher: %v", err)
		}
		logger.Info("Publishing events to Kafka", "brokers", cfg.Events.KafkaBrokers)
	} else {
		publisher, err = events.NewGoChannelPublisher(cfg.Events.Topic, slogLogger)
		if err != nil {
			log.Fatalf("Failed to initialize event publisher: %v", err)
		}
	}

	// Initialize repositories
	repoManager := postgres.NewRepositoryManager(db)
	if err := repoManager.Initialize(); err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	// Initialize validator
	v := validator.New()

	// Initialize services
	serviceManager := services.NewServiceManager(repoManager.GetRepository(), publisher, slogLogger, v)
	if err := serviceManager.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Initialize handlers
	handlerManager := handlers.NewHandlerManager(serviceManager, sessionStore, cfg.Session, repoManager.GetRepository(), logger)

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlers.SetupMiddleware(router, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	if err := serviceManager.Shutdown(ctx); err != nil {
		logger.Error("Service shutdown failed", "error", err)
	}
	if err := repoManager.Shutdown(ctx); err != nil {
		logger.Error("Repository shutdown failed", "error", err)
	}

	logger.Info("Server exited")
}
