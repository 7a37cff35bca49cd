// AngelaMos | 2026
// entity.go

package file

import (
	"time"
)

// File is one uploaded spreadsheet. UserID is set at upload and never
// changes; every non-admin read or mutation is scoped to (id, user_id)
// in a single query.
type File struct {
	ID           string    `db:"id"`
	UserID       string    `db:"user_id"`
	Filename     string    `db:"filename"`
	OriginalName string    `db:"original_name"`
	StoragePath  string    `db:"storage_path"`
	SizeBytes    int64     `db:"size_bytes"`
	MimeType     string    `db:"mime_type"`
	UploadedAt   time.Time `db:"uploaded_at"`
}
