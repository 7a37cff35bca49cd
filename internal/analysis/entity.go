// AngelaMos | 2026
// entity.go

package analysis

import (
	"time"
)

// Analysis is one saved chart configuration. Records are append-only:
// there is no edit or delete operation, and Position fixes the
// insertion order within a file's history.
type Analysis struct {
	ID        string    `db:"id"`
	FileID    string    `db:"file_id"`
	ChartType string    `db:"chart_type"`
	XAxis     string    `db:"x_axis"`
	YAxis     string    `db:"y_axis"`
	Position  int       `db:"position"`
	CreatedAt time.Time `db:"created_at"`
}
