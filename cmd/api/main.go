package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kilo-recipes/recipe-api/backend/config"
	"github.com/kilo-recipes/recipe-api/backend/internal/database"
	"github.com/kilo-recipes/recipe-api/backend/internal/logging"
	"github.com/kilo-recipes/recipe-api/backend/internal/router"
	"github.com/kilo-recipes/recipe-api/backend/internal/server"
	"github.com/kilo-recipes/recipe-api/backend/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	gin.SetMode(config.GetEnvironment().GinMode())

	// Initialize database
	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(db, logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	rdb, err := database.NewRedisClient(cfg, logger)
	if err != nil {
		logger.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
	}

	store, err := storage.New(context.Background(), cfg)
	if err != nil {
		logger.Fatal("failed to initialize media storage", zap.Error(err))
	}

	handler := router.SetupRouter(router.Dependencies{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Store:  store,
		Logger: logger,
	})
	srv := server.New(cfg, handler, logger)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("received signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
		return
	}
	logger.Info("server stopped")
}
