// AngelaMos | 2026
// repository.go

package analysis

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sheetlens/api/internal/core"
)

type Repository interface {
	// Append inserts the record with the next position for its file.
	// The position assignment and the insert are one statement, so two
	// concurrent appends serialize on the row write; which one lands
	// first is not defined.
	Append(ctx context.Context, a *Analysis) error
	ListByFile(ctx context.Context, fileID string) ([]Analysis, error)
	HistoryByOwner(ctx context.Context, userID string) ([]FileHistory, error)
	Count(ctx context.Context) (int, error)
}

// FileHistory pairs a file's display name with its full ordered history.
type FileHistory struct {
	FileID   string
	FileName string
	Analyses []Analysis
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Append(ctx context.Context, a *Analysis) error {
	query := `
		INSERT INTO analyses (id, file_id, chart_type, x_axis, y_axis, position)
		SELECT $1, $2, $3, $4, $5, COALESCE(MAX(position) + 1, 0)
		FROM analyses
		WHERE file_id = $2
		RETURNING position, created_at`

	err := r.db.GetContext(ctx, a, query,
		a.ID,
		a.FileID,
		a.ChartType,
		a.XAxis,
		a.YAxis,
	)
	if err != nil {
		return fmt.Errorf("append analysis: %w", err)
	}

	return nil
}

func (r *repository) ListByFile(
	ctx context.Context,
	fileID string,
) ([]Analysis, error) {
	query := `
		SELECT id, file_id, chart_type, x_axis, y_axis, position, created_at
		FROM analyses
		WHERE file_id = $1
		ORDER BY position ASC`

	var analyses []Analysis
	if err := r.db.SelectContext(ctx, &analyses, query, fileID); err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}

	return analyses, nil
}

type historyRow struct {
	FileID    string         `db:"file_id"`
	FileName  string         `db:"original_name"`
	ID        sql.NullString `db:"id"`
	ChartType sql.NullString `db:"chart_type"`
	XAxis     sql.NullString `db:"x_axis"`
	YAxis     sql.NullString `db:"y_axis"`
	Position  sql.NullInt64  `db:"position"`
	CreatedAt sql.NullTime   `db:"created_at"`
}

// HistoryByOwner returns every file the user owns, newest upload first,
// each with its ordered history. Files without analyses appear with an
// empty history, which is why this is a LEFT JOIN.
func (r *repository) HistoryByOwner(
	ctx context.Context,
	userID string,
) ([]FileHistory, error) {
	query := `
		SELECT f.id AS file_id, f.original_name,
		       a.id, a.chart_type, a.x_axis, a.y_axis, a.position, a.created_at
		FROM files f
		LEFT JOIN analyses a ON a.file_id = f.id
		WHERE f.user_id = $1
		ORDER BY f.uploaded_at DESC, a.position ASC`

	var rows []historyRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("history by owner: %w", err)
	}

	var history []FileHistory
	for _, row := range rows {
		n := len(history)
		if n == 0 || history[n-1].FileID != row.FileID {
			history = append(history, FileHistory{
				FileID:   row.FileID,
				FileName: row.FileName,
				Analyses: []Analysis{},
			})
			n++
		}

		if !row.ID.Valid {
			continue
		}

		history[n-1].Analyses = append(history[n-1].Analyses, Analysis{
			ID:        row.ID.String,
			FileID:    row.FileID,
			ChartType: row.ChartType.String,
			XAxis:     row.XAxis.String,
			YAxis:     row.YAxis.String,
			Position:  int(row.Position.Int64),
			CreatedAt: row.CreatedAt.Time,
		})
	}

	return history, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM analyses`

	var count int
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count analyses: %w", err)
	}

	return count, nil
}
