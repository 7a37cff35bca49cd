// AngelaMos | 2026
// storage.go

// Package storage holds uploaded spreadsheet bytes outside the database.
// The database row keeps only the backend-specific path returned by Save.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/sheetlens/api/internal/config"
)

type Store interface {
	Save(ctx context.Context, name string, r io.Reader, size int64) (string, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Remove(ctx context.Context, path string) error
}

func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case "local":
		return NewLocal(cfg.LocalDir)
	case "s3":
		return NewS3(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
