package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bookstore-platform/fulfillment-service/pkg/cloudevents"
	"github.com/bookstore-platform/fulfillment-service/pkg/kafka"
	"github.com/bookstore-platform/fulfillment-service/pkg/logging"
	"github.com/bookstore-platform/fulfillment-service/pkg/metrics"
	"github.com/bookstore-platform/fulfillment-service/pkg/middleware"
	"github.com/bookstore-platform/fulfillment-service/pkg/mongodb"
	"github.com/bookstore-platform/fulfillment-service/pkg/outbox"
	outboxMongo "github.com/bookstore-platform/fulfillment-service/pkg/outbox/mongodb"
	"github.com/bookstore-platform/fulfillment-service/pkg/tracing"

	"github.com/bookstore-platform/fulfillment-service/internal/api/handlers"
	"github.com/bookstore-platform/fulfillment-service/internal/application"
	mongoRepo "github.com/bookstore-platform/fulfillment-service/internal/infrastructure/mongodb"
)

const serviceName = "fulfillment-service"

func main() {
	if err := run(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	config := loadConfig()

	logConfig := logging.DefaultConfig(serviceName)
	logConfig.Level = logging.LogLevel(getEnv("LOG_LEVEL", "info"))
	logger := logging.New(logConfig)
	logger.SetDefault()

	logger.Info("Starting fulfillment-service API")

	// Initialize OpenTelemetry tracing
	tracingConfig := tracing.DefaultConfig(serviceName)
	tracingConfig.OTLPEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	tracingConfig.Environment = getEnv("ENVIRONMENT", "development")
	tracingConfig.Enabled = getEnv("TRACING_ENABLED", "true") == "true"

	tracerProvider, err := tracing.Initialize(ctx, tracingConfig)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize tracing")
		// Continue without tracing
	} else if tracerProvider != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
				logger.WithError(err).Error("Failed to shutdown tracer")
			}
		}()
		logger.Info("Tracing initialized", "endpoint", tracingConfig.OTLPEndpoint)
	}

	// Initialize Prometheus metrics
	m := metrics.New(metrics.DefaultConfig(serviceName))
	logger.Info("Metrics initialized")

	// Connect to MongoDB
	mongoClient, err := mongodb.NewClient(ctx, config.MongoDB)
	if err != nil {
		logger.WithError(err).Error("Failed to connect to MongoDB")
		return fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	defer mongoClient.Close(ctx)
	logger.Info("Connected to MongoDB", "database", config.MongoDB.Database)

	db := mongoClient.Database()

	// Kafka producer behind a circuit breaker
	producer := kafka.NewProducer(config.Kafka)
	cbProducer := kafka.NewCircuitBreakerProducer(producer, logger)
	defer func() {
		_ = cbProducer.Close()
	}()
	logger.Info("Kafka producer initialized", "brokers", config.Kafka.Brokers)

	eventFactory := cloudevents.NewEventFactory("/fulfillment-service")

	// Outbox repository and background publisher
	outboxRepo := outboxMongo.NewOutboxRepository(db)
	if err := outboxRepo.EnsureIndexes(ctx); err != nil {
		logger.WithError(err).Warn("Failed to ensure outbox indexes")
	}
	publisher := outbox.NewPublisher(outboxRepo, cbProducer, logger, m, nil)
	if err := publisher.Start(ctx); err != nil {
		logger.WithError(err).Error("Failed to start outbox publisher")
		return fmt.Errorf("failed to start outbox publisher: %w", err)
	}
	defer func() {
		_ = publisher.Stop()
	}()
	logger.Info("Outbox publisher started")

	// Repositories
	bookRepo := mongoRepo.NewBookRepository(db)
	locationRepo := mongoRepo.NewLocationRepository(db)
	cartRepo := mongoRepo.NewCartRepository(db)
	orderRepo := mongoRepo.NewOrderRepository(db)
	requestRepo := mongoRepo.NewPurchaseRequestRepository(db)
	transferRepo := mongoRepo.NewTransferRepository(db)
	ledger := mongoRepo.NewStockLedgerRepository(db)

	// Application services
	catalogService := application.NewCatalogService(bookRepo, locationRepo, logger)
	cartService := application.NewCartService(cartRepo, bookRepo, logger)
	checkoutService := application.NewCheckoutService(
		cartRepo, bookRepo, locationRepo, orderRepo, ledger,
		mongoClient, outboxRepo, eventFactory, logger, m,
	)
	purchaseRequestService := application.NewPurchaseRequestService(
		requestRepo, bookRepo, locationRepo, ledger,
		mongoClient, outboxRepo, eventFactory, logger, m,
	)
	transferService := application.NewTransferService(
		transferRepo, bookRepo, locationRepo, ledger,
		mongoClient, outboxRepo, eventFactory, logger, m,
	)
	ledgerService := application.NewLedgerService(ledger, bookRepo, logger, m)

	// Router and middleware
	router := gin.New()
	middleware.Setup(router, middleware.DefaultConfig(serviceName, logger.Logger))
	router.Use(middleware.MetricsMiddleware(m))
	router.Use(middleware.TracingMiddleware(middleware.DefaultTracingConfig(serviceName)))

	router.NoRoute(middleware.NoRoute())
	router.NoMethod(middleware.NoMethod())

	router.GET("/health", middleware.HealthCheck(serviceName))
	router.GET("/ready", middleware.ReadinessCheck(serviceName, func() error {
		return mongoClient.HealthCheck(ctx)
	}))
	router.GET("/metrics", middleware.MetricsEndpoint(m))

	// API routes run behind actor auth; each mutating route also
	// checks the capability its operation requires.
	apiV1 := router.Group("/api/v1", middleware.ActorAuth())

	handlers.NewBookHandlers(catalogService, logger).RegisterRoutes(apiV1)
	handlers.NewLocationHandlers(catalogService, logger).RegisterRoutes(apiV1)
	handlers.NewCartHandlers(cartService, logger).RegisterRoutes(apiV1)
	handlers.NewOrderHandlers(checkoutService, logger).RegisterRoutes(apiV1)
	handlers.NewPurchaseRequestHandlers(purchaseRequestService, logger).RegisterRoutes(apiV1)
	handlers.NewTransferHandlers(transferService, logger).RegisterRoutes(apiV1)
	handlers.NewStockHandlers(ledgerService, logger).RegisterRoutes(apiV1)

	srv := &http.Server{
		Addr:         config.ServerAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error", "error", err)
		}
	}()
	logger.Info("Server started", "addr", config.ServerAddr)

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-signalCh:
	case <-ctx.Done():
	}
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server stopped")
	return nil
}

// Config holds application configuration
type Config struct {
	ServerAddr string
	MongoDB    *mongodb.Config
	Kafka      *kafka.Config
}

func loadConfig() *Config {
	mongoConfig := mongodb.DefaultConfig()
	mongoConfig.URI = getEnv("MONGODB_URI", mongoConfig.URI)
	mongoConfig.Database = getEnv("MONGODB_DATABASE", "fulfillment_db")
	mongoConfig.ReplicaSet = getEnv("MONGODB_REPLICA_SET", "")

	kafkaConfig := kafka.DefaultConfig()
	kafkaConfig.Brokers = strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")

	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		MongoDB:    mongoConfig,
		Kafka:      kafkaConfig,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
