package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// requirements lists the settings that must be non-empty in each environment
var requirements = map[Environment][]string{
	Development: {},
	Test:        {},
	CI:          {"JWT_SECRET"},
	Production:  {"JWT_SECRET", "DB_PASSWORD"},
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()

	var errs []string
	for _, field := range requirements[env] {
		if lookup(cfg, field) == "" {
			errs = append(errs, ValidationError{Field: field, Message: "is required in " + string(env)}.Error())
		}
	}

	switch cfg.DBDriver {
	case "postgres":
	case "sqlite":
		if env == Production {
			errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: "sqlite is not allowed in production"}.Error())
		}
	default:
		errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unknown driver %q", cfg.DBDriver)}.Error())
	}

	switch cfg.StorageBackend {
	case "local", "s3":
	default:
		errs = append(errs, ValidationError{Field: "STORAGE_BACKEND", Message: fmt.Sprintf("unknown backend %q", cfg.StorageBackend)}.Error())
	}

	if cfg.MaxUploadSize <= 0 {
		errs = append(errs, ValidationError{Field: "MAX_UPLOAD_SIZE", Message: "must be positive"}.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}

func lookup(cfg *Config, field string) string {
	switch field {
	case "JWT_SECRET":
		return cfg.JWTSecret
	case "DB_PASSWORD":
		return cfg.DBPassword
	}
	return ""
}
