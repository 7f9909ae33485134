package main

import (
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/kilo-recipes/recipe-api/backend/config"
	"github.com/kilo-recipes/recipe-api/backend/internal/database"
	"github.com/kilo-recipes/recipe-api/backend/internal/logging"
)

func main() {
	status := flag.Bool("status", false, "Print the migration status instead of migrating")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, "console")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if *status {
		if err := database.MigrationStatus(db, logger); err != nil {
			logger.Fatal("failed to read migration status", zap.Error(err))
		}
		return
	}

	if err := database.RunMigrations(db, logger); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
	logger.Info("migrations applied")
}
