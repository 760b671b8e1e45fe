package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-service/internal/auth"
	"catalog-service/internal/cache"
	"catalog-service/internal/config"
	"catalog-service/internal/events"
	"catalog-service/internal/handlers"
	"catalog-service/internal/repository"
	"catalog-service/pkg/logger"
	"catalog-service/pkg/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "catalog-service/docs" // Import docs for Swagger
)

// @title           Catalog Service API
// @version         1.0
// @description     Price table with per-item quantity counters and a derived running total
// @termsOfService  http://swagger.io/terms/

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1

// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token. Only required when AUTH_ENABLED=true.
func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	appLogger := logger.New(cfg.Environment, cfg.ServiceName)
	defer appLogger.Sync()

	appLogger.Info("🚀 Starting Catalog Service",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port),
	)

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := gin.New()

	// CORS middleware (must be first to handle preflight requests)
	router.Use(middleware.CORSMiddleware())

	router.Use(middleware.RecoveryHandler(appLogger))
	router.Use(logger.GinMiddleware(appLogger))

	// Request ID middleware (must be early in the chain)
	router.Use(middleware.RequestIDMiddleware(appLogger))

	// Error handler middleware
	router.Use(middleware.ErrorHandler(appLogger))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Catalog change feed (Kafka when enabled)
	appLogger.Info("📡 Event publisher configuration",
		zap.Bool("use_kafka", cfg.UseKafka),
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic_items", cfg.KafkaTopicItems),
		zap.String("topic_quantities", cfg.KafkaTopicQuantities),
	)
	eventBus := events.NewPublisherFromConfig(cfg, appLogger)

	// Request ID store for idempotency (Redis when enabled)
	requestIDStore := cache.NewRequestIDStore(cfg, appLogger)
	idempotencyTTL := time.Duration(cfg.IdempotencyTTL) * time.Second

	catalogRepo := repository.NewCatalogRepository()
	catalogHandler := handlers.NewCatalogHandler(appLogger, catalogRepo, eventBus)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.ServiceName, appLogger)
	authHandler := auth.NewAuthHandler(jwtManager, cfg.AuthUsers, appLogger)

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint (public)
		v1.GET("/health", healthCheck(cfg.ServiceName))

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
		}

		catalog := v1.Group("/catalog")
		{
			catalog.GET("", catalogHandler.GetCatalog)
			catalog.GET("/total", catalogHandler.GetTotal)
		}

		writes := v1.Group("/catalog")
		if cfg.AuthEnabled {
			appLogger.Info("🔐 Write routes require a JWT",
				zap.Int("secret_length", len(cfg.JWTSecret)),
				zap.Duration("token_ttl", jwtManager.TTL()),
			)
			writes.Use(middleware.AuthMiddleware(jwtManager, appLogger))
		}
		// Idempotency runs after auth so cached responses are only replayed to authorized callers
		writes.Use(middleware.IdempotencyMiddleware(requestIDStore, appLogger, idempotencyTTL))
		{
			writes.POST("/items", catalogHandler.AddItem)
			writes.POST("/items/:id/increment", catalogHandler.IncrementItem)
			writes.POST("/items/:id/decrement", catalogHandler.DecrementItem)
			writes.DELETE("/items/:id", catalogHandler.DeleteItem)
			writes.POST("/reset", catalogHandler.ResetCatalog)
		}
	}

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		appLogger.Info("Starting catalog service",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	closeIfCloser(appLogger, "event publisher", eventBus)
	closeIfCloser(appLogger, "request ID store", requestIDStore)

	appLogger.Info("Server exited")
}

func closeIfCloser(log *zap.Logger, name string, v interface{}) {
	closer, ok := v.(io.Closer)
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		log.Warn("Failed to close "+name, zap.Error(err))
	}
}

// healthCheck godoc
// @Summary      Health check endpoint
// @Description  Returns the service status and name.
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func healthCheck(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": service,
		})
	}
}
