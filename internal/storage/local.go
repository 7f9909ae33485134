package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local writes files below a root directory
type Local struct {
	root    string
	baseURL string
}

// NewLocal creates a Local store; baseURL is prefixed to keys in URL.
func NewLocal(root, baseURL string) *Local {
	return &Local{root: root, baseURL: baseURL}
}

// Save writes r to root/key, creating parent directories
func (l *Local) Save(ctx context.Context, key string, r io.Reader, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dest, err := l.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create media directory: %w", err)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create media file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(dest)
		return fmt.Errorf("failed to write media file: %w", err)
	}
	return f.Close()
}

// URL joins the base URL and key
func (l *Local) URL(key string) string {
	return strings.TrimSuffix(l.baseURL, "/") + "/" + strings.TrimPrefix(key, "/")
}

func (l *Local) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid media key %q", key)
	}
	return filepath.Join(l.root, clean), nil
}
