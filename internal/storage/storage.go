// Package storage persists uploaded media files.
package storage

import (
	"context"
	"fmt"

	"github.com/kilo-recipes/recipe-api/backend/config"
	"github.com/kilo-recipes/recipe-api/backend/internal/service"
)

// New returns the backend selected by cfg.StorageBackend
func New(ctx context.Context, cfg *config.Config) (service.ObjectStore, error) {
	switch cfg.StorageBackend {
	case "s3":
		s3Cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load S3 config: %w", err)
		}
		return NewS3(s3Cfg.Client, s3Cfg.BucketName, s3Cfg.PublicURL), nil
	case "local", "":
		return NewLocal(cfg.MediaRoot, cfg.MediaURL), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
