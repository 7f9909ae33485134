package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/kilo-recipes/recipe-api/backend/config"
	"github.com/kilo-recipes/recipe-api/backend/internal/database"
	"github.com/kilo-recipes/recipe-api/backend/internal/logging"
	"github.com/kilo-recipes/recipe-api/backend/internal/service"
)

func main() {
	email := flag.String("email", "", "Email address of the superuser")
	password := flag.String("password", os.Getenv("SUPERUSER_PASSWORD"), "Password (defaults to $SUPERUSER_PASSWORD)")
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

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

	if err := database.RunMigrations(db, logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	auth := service.NewAuthService(db.DB, cfg.JWTSecret, cfg.TokenTTL)
	user, err := auth.CreateSuperuser(context.Background(), *email, *password)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			for field, msgs := range verr.Fields {
				fmt.Fprintf(os.Stderr, "%s: %s\n", field, strings.Join(msgs, " "))
			}
			os.Exit(1)
		}
		logger.Fatal("failed to create superuser", zap.Error(err))
	}

	logger.Info("superuser created", zap.Uint("id", user.ID), zap.String("email", user.Email))
}
