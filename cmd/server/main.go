package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	connectorapp "github.com/protheus/connector/internal/application/connector"
	"github.com/protheus/connector/internal/infrastructure/config"
	"github.com/protheus/connector/internal/infrastructure/logger"
	"github.com/protheus/connector/internal/infrastructure/persistence"
	"github.com/protheus/connector/internal/infrastructure/protheus"
	"github.com/protheus/connector/internal/interfaces/http/handler"
	"github.com/protheus/connector/internal/interfaces/http/middleware"
	"github.com/protheus/connector/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Protheus connector",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("protheus_base_url", cfg.Protheus.BaseURL),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize the local store with the custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database connected and migrated",
		zap.String("driver", cfg.Database.Driver),
	)

	// Initialize repositories
	idemStore := persistence.NewGormIdempotencyStore(db.DB)
	mappingRepo := persistence.NewGormMappingRepository(db.DB)
	syncRunRepo := persistence.NewGormSyncRunRepository(db.DB)
	rawPayloadRepo := persistence.NewGormRawPayloadRepository(db.DB)

	// Initialize the Protheus REST gateway
	gateway := protheus.NewClient(&cfg.Protheus, log)

	// Initialize application services
	customerService := connectorapp.NewCustomerService(idemStore, mappingRepo, gateway, log)
	orderService := connectorapp.NewOrderService(idemStore, mappingRepo, gateway, log)
	syncService := connectorapp.NewSyncService(gateway, syncRunRepo, rawPayloadRepo, log)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Customer: handler.NewCustomerHandler(customerService),
		Order:    handler.NewOrderHandler(orderService),
		Sync:     handler.NewSyncHandler(syncService),
		System:   handler.NewSystemHandler(db, cfg.App.Name, cfg.App.Env),
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID first so recovery and logging carry it,
	// then the body limit guarding the write routes. The API key applies per
	// route group inside the router, keeping /health open without a key.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	router.Setup(engine, handlers, middleware.APIKey(cfg.App.APIKey))

	// Create HTTP server with config. The write timeout must outlast the
	// Protheus client timeout or slow ERP writes get cut off mid-response.
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
