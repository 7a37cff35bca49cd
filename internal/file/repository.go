// AngelaMos | 2026
// repository.go

package file

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sheetlens/api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, file *File) error
	// GetOwned filters by id AND owner in one statement so a file that
	// exists but belongs to someone else is indistinguishable from one
	// that does not exist.
	GetOwned(ctx context.Context, id, userID string) (*File, error)
	ListByOwner(ctx context.Context, userID string) ([]File, error)
	DeleteOwned(ctx context.Context, id, userID string) (*File, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, file *File) error {
	query := `
		INSERT INTO files (
			id, user_id, filename, original_name,
			storage_path, size_bytes, mime_type
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING uploaded_at`

	err := r.db.GetContext(ctx, &file.UploadedAt, query,
		file.ID,
		file.UserID,
		file.Filename,
		file.OriginalName,
		file.StoragePath,
		file.SizeBytes,
		file.MimeType,
	)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	return nil
}

func (r *repository) GetOwned(
	ctx context.Context,
	id, userID string,
) (*File, error) {
	query := `
		SELECT id, user_id, filename, original_name,
		       storage_path, size_bytes, mime_type, uploaded_at
		FROM files
		WHERE id = $1 AND user_id = $2`

	var file File
	err := r.db.GetContext(ctx, &file, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get file: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	return &file, nil
}

func (r *repository) ListByOwner(
	ctx context.Context,
	userID string,
) ([]File, error) {
	query := `
		SELECT id, user_id, filename, original_name,
		       storage_path, size_bytes, mime_type, uploaded_at
		FROM files
		WHERE user_id = $1
		ORDER BY uploaded_at ASC`

	var files []File
	if err := r.db.SelectContext(ctx, &files, query, userID); err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	return files, nil
}

func (r *repository) DeleteOwned(
	ctx context.Context,
	id, userID string,
) (*File, error) {
	query := `
		DELETE FROM files
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, filename, original_name,
		          storage_path, size_bytes, mime_type, uploaded_at`

	var file File
	err := r.db.GetContext(ctx, &file, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("delete file: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("delete file: %w", err)
	}

	return &file, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM files`

	var count int
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count files: %w", err)
	}

	return count, nil
}
