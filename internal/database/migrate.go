package database

import (
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/kilo-recipes/recipe-api/backend/internal/models"
)

//go:embed migrations/*.sql
var migrations embed.FS

// RunMigrations brings the schema up to date. Postgres is migrated with the
// embedded goose migrations; SQLite uses gorm auto-migration.
func RunMigrations(db *DB, log *zap.Logger) error {
	if db.Dialector.Name() == "sqlite" {
		log.Info("using gorm auto-migration for sqlite")
		return AutoMigrate(db)
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(zap.NewStdLog(log))

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.Up(db.sqlDB, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// MigrationStatus logs the applied state of every embedded migration
func MigrationStatus(db *DB, log *zap.Logger) error {
	if db.Dialector.Name() == "sqlite" {
		return fmt.Errorf("migration status is only tracked for postgres")
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(zap.NewStdLog(log))
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.Status(db.sqlDB, "migrations"); err != nil {
		return fmt.Errorf("goose status: %w", err)
	}
	return nil
}

// AutoMigrate creates the schema from the gorm models
func AutoMigrate(db *DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
