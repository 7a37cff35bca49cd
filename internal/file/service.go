// AngelaMos | 2026
// service.go

package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sheetlens/api/internal/config"
	"github.com/sheetlens/api/internal/core"
	"github.com/sheetlens/api/internal/storage"
)

var ErrDisallowedType = errors.New("file type not allowed")

type Service struct {
	repo        Repository
	store       storage.Store
	allowedExts map[string]struct{}
}

func NewService(
	repo Repository,
	store storage.Store,
	cfg config.UploadConfig,
) *Service {
	allowed := make(map[string]struct{}, len(cfg.AllowedExts))
	for _, ext := range cfg.AllowedExts {
		allowed[strings.ToLower(ext)] = struct{}{}
	}

	return &Service{
		repo:        repo,
		store:       store,
		allowedExts: allowed,
	}
}

// Upload rejects disallowed extensions before a single byte is written
// or any record is created. The extension check ignores the declared
// content type on purpose.
func (s *Service) Upload(
	ctx context.Context,
	userID, originalName string,
	r io.Reader,
	size int64,
	mimeType string,
) (*File, error) {
	ext := strings.TrimPrefix(
		strings.ToLower(filepath.Ext(originalName)),
		".",
	)
	if _, ok := s.allowedExts[ext]; !ok {
		return nil, fmt.Errorf(
			"upload %q: %w: %w",
			originalName,
			ErrDisallowedType,
			core.ErrInvalidInput,
		)
	}

	storedName := fmt.Sprintf(
		"%d-%s",
		time.Now().UnixNano(),
		sanitizeName(originalName),
	)

	path, err := s.store.Save(ctx, storedName, r, size)
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	file := &File{
		ID:           uuid.New().String(),
		UserID:       userID,
		Filename:     storedName,
		OriginalName: originalName,
		StoragePath:  path,
		SizeBytes:    size,
		MimeType:     mimeType,
	}

	if err := s.repo.Create(ctx, file); err != nil {
		if removeErr := s.store.Remove(ctx, path); removeErr != nil {
			slog.Warn("orphaned upload left in storage",
				"path", path,
				"error", removeErr,
			)
		}
		return nil, err
	}

	return file, nil
}

func (s *Service) ListMine(ctx context.Context, userID string) ([]File, error) {
	return s.repo.ListByOwner(ctx, userID)
}

// GetData parses the owned file's first sheet. Absent or unowned files
// surface as core.ErrNotFound; unreadable content as core.ErrParse.
func (s *Service) GetData(
	ctx context.Context,
	userID, fileID string,
) (*SheetData, error) {
	file, err := s.repo.GetOwned(ctx, fileID, userID)
	if err != nil {
		return nil, err
	}

	rc, err := s.store.Open(ctx, file.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("open stored file: %v: %w", err, core.ErrParse)
	}
	//nolint:errcheck // read-only stream
	defer rc.Close()

	return ParseSheet(rc)
}

func (s *Service) Delete(ctx context.Context, userID, fileID string) error {
	file, err := s.repo.DeleteOwned(ctx, fileID, userID)
	if err != nil {
		return err
	}

	if err := s.store.Remove(ctx, file.StoragePath); err != nil {
		slog.Warn("could not remove stored bytes for deleted file",
			"file_id", file.ID,
			"path", file.StoragePath,
			"error", err,
		)
	}

	return nil
}

// GetOwned exposes the owner-scoped lookup for the analysis service.
func (s *Service) GetOwned(
	ctx context.Context,
	userID, fileID string,
) (*File, error) {
	return s.repo.GetOwned(ctx, fileID, userID)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func sanitizeName(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return "upload"
	}
	return b.String()
}
