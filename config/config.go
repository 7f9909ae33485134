package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost      string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	ServerPort      string        `env:"SERVER_PORT" envDefault:"8000"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Database configuration
	DBDriver   string `env:"DB_DRIVER" envDefault:"postgres"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"recipes"`
	DBSSLMode  string `env:"DB_SSL_MODE" envDefault:"disable"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"recipes.db"`

	// Redis configuration
	RedisURL      string `env:"REDIS_URL"`
	RedisHost     string `env:"REDIS_HOST"`
	RedisPort     string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Token configuration
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Comma-separated list of allowed origins
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:5173"`

	// Media storage
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"local"`
	MediaRoot      string `env:"MEDIA_ROOT" envDefault:"vol/web/media"`
	MediaURL       string `env:"MEDIA_URL" envDefault:"/static/media/"`
	S3BucketName   string `env:"S3_BUCKET_NAME" envDefault:"recipe-api-media"`
	AWSRegion      string `env:"AWS_REGION"`
	S3PublicURL    string `env:"S3_PUBLIC_URL"`
	MaxUploadSize  int64  `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"`

	// Rate limiting
	RateLimitEnabled        bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitRecipeCreation int           `env:"RATE_LIMIT_RECIPE_CREATION" envDefault:"100"`
	RateLimitImageUpload    int           `env:"RATE_LIMIT_IMAGE_UPLOAD" envDefault:"30"`
	RateLimitWindow         time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1h"`
}

// LoadConfig builds a Config from an optional .env file, environment variables and Docker secrets
func LoadConfig() (*Config, error) {
	envName := GetEnvironment()

	if envName == Development {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	// Docker secrets take precedence over plain environment variables
	if envName != CI {
		overlaySecret(&cfg.DBPassword, "db_password")
		overlaySecret(&cfg.JWTSecret, "jwt_secret")
		overlaySecret(&cfg.RedisPassword, "redis_password")
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// DSN returns the postgres connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// AllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) AllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	var origins []string
	for _, origin := range strings.Split(c.CORSAllowedOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func overlaySecret(field *string, name string) {
	if value := readSecret(name); value != "" {
		*field = value
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
