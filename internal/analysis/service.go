// AngelaMos | 2026
// service.go

package analysis

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sheetlens/api/internal/file"
)

// FileProvider resolves a file by owner. A file that exists but belongs
// to someone else comes back as core.ErrNotFound, so callers cannot
// tell the two cases apart.
type FileProvider interface {
	GetOwned(ctx context.Context, userID, fileID string) (*file.File, error)
}

type Service struct {
	repo  Repository
	files FileProvider
}

func NewService(repo Repository, files FileProvider) *Service {
	return &Service{
		repo:  repo,
		files: files,
	}
}

// Append records a chart configuration against the user's file.
func (s *Service) Append(
	ctx context.Context,
	userID, fileID string,
	req *AppendRequest,
) (*Analysis, error) {
	if _, err := s.files.GetOwned(ctx, userID, fileID); err != nil {
		return nil, fmt.Errorf("resolve file: %w", err)
	}

	analysis := &Analysis{
		ID:        uuid.NewString(),
		FileID:    fileID,
		ChartType: req.ChartType,
		XAxis:     req.XAxis,
		YAxis:     req.YAxis,
	}

	if err := s.repo.Append(ctx, analysis); err != nil {
		return nil, err
	}

	return analysis, nil
}

// HistoryForFile returns the file's analyses in append order.
func (s *Service) HistoryForFile(
	ctx context.Context,
	userID, fileID string,
) ([]Analysis, error) {
	if _, err := s.files.GetOwned(ctx, userID, fileID); err != nil {
		return nil, fmt.Errorf("resolve file: %w", err)
	}

	return s.repo.ListByFile(ctx, fileID)
}

// HistoryForUser returns all of the user's files with their analyses,
// newest upload first.
func (s *Service) HistoryForUser(
	ctx context.Context,
	userID string,
) ([]UserHistoryEntry, error) {
	history, err := s.repo.HistoryByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := make([]UserHistoryEntry, 0, len(history))
	for _, h := range history {
		entries = append(entries, UserHistoryEntry{
			FileID:   h.FileID,
			FileName: h.FileName,
			Analyses: ToAnalysisResponseList(h.Analyses),
		})
	}

	return entries, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
