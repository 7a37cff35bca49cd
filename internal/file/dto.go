// AngelaMos | 2026
// dto.go

package file

import (
	"time"
)

type FileResponse struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	SizeBytes    int64     `json:"size_bytes"`
	MimeType     string    `json:"mime_type"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

type FileDataResponse struct {
	Headers []string            `json:"headers"`
	Data    []map[string]string `json:"data"`
}

func ToFileResponse(f *File) FileResponse {
	return FileResponse{
		ID:           f.ID,
		Filename:     f.Filename,
		OriginalName: f.OriginalName,
		SizeBytes:    f.SizeBytes,
		MimeType:     f.MimeType,
		UploadedAt:   f.UploadedAt,
	}
}

func ToFileResponseList(files []File) []FileResponse {
	responses := make([]FileResponse, 0, len(files))
	for _, f := range files {
		responses = append(responses, ToFileResponse(&f))
	}
	return responses
}
