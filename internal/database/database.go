package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kilo-recipes/recipe-api/backend/config"
)

// DB represents the database connection
type DB struct {
	*gorm.DB
	sqlDB *sql.DB
}

// New opens the database selected by cfg.DBDriver
func New(cfg *config.Config, log *zap.Logger) (*DB, error) {
	gormCfg := &gorm.Config{
		Logger:         logger.Default.LogMode(gormLogLevel(config.GetEnvironment())),
		TranslateError: true,
	}

	var (
		gdb *gorm.DB
		err error
	)
	switch cfg.DBDriver {
	case "sqlite":
		log.Info("opening sqlite database", zap.String("path", cfg.SQLitePath))
		gdb, err = gorm.Open(sqlite.Open(SQLiteDSN(cfg.SQLitePath)), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("error opening database: %w", err)
		}
	default:
		log.Info("connecting to database",
			zap.String("host", cfg.DBHost),
			zap.String("port", cfg.DBPort),
			zap.String("user", cfg.DBUser),
		)

		sqlDB, err := sql.Open("postgres", cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("error opening database: %w", err)
		}

		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)

		gdb, err = gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormCfg)
		if err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("error opening database: %w", err)
		}
	}

	db, err := Wrap(gdb)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.HealthCheck(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	log.Info("successfully connected to database", zap.String("driver", gdb.Dialector.Name()))
	return db, nil
}

// Wrap adopts an already opened gorm handle
func Wrap(gdb *gorm.DB) (*DB, error) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("error getting sql handle: %w", err)
	}
	return &DB{DB: gdb, sqlDB: sqlDB}, nil
}

// SQLiteDSN enables foreign keys on a sqlite path or URI
func SQLiteDSN(path string) string {
	if path == ":memory:" {
		return "file::memory:?cache=shared&_foreign_keys=1"
	}
	return "file:" + path + "?_foreign_keys=1"
}

// HealthCheck checks if the database is accessible
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.sqlDB.PingContext(ctx)
}

// Close releases the connection pool
func (db *DB) Close() error {
	return db.sqlDB.Close()
}

// IsUniqueViolation reports whether err is a unique constraint failure
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func gormLogLevel(env config.Environment) logger.LogLevel {
	switch env {
	case config.Development:
		return logger.Warn
	case config.Test, config.CI:
		return logger.Silent
	default:
		return logger.Error
	}
}
