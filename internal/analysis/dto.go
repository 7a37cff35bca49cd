// AngelaMos | 2026
// dto.go

package analysis

import (
	"time"
)

// The chart kinds the client offers. Anything else is rejected up
// front; the axis names are NOT checked against the file's actual
// columns, any string is accepted.
type AppendRequest struct {
	ChartType string `json:"chartType" validate:"required,oneof=line bar pie doughnut radar bubble 3d"`
	XAxis     string `json:"xAxis"     validate:"required,max=255"`
	YAxis     string `json:"yAxis"     validate:"required,max=255"`
}

type AnalysisResponse struct {
	ID        string    `json:"id"`
	ChartType string    `json:"chartType"`
	XAxis     string    `json:"xAxis"`
	YAxis     string    `json:"yAxis"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// UserHistoryEntry groups one file's history for the per-user view,
// most recently uploaded file first.
type UserHistoryEntry struct {
	FileID   string             `json:"file_id"`
	FileName string             `json:"fileName"`
	Analyses []AnalysisResponse `json:"analyses"`
}

func ToAnalysisResponse(a *Analysis) AnalysisResponse {
	return AnalysisResponse{
		ID:        a.ID,
		ChartType: a.ChartType,
		XAxis:     a.XAxis,
		YAxis:     a.YAxis,
		Position:  a.Position,
		CreatedAt: a.CreatedAt,
	}
}

func ToAnalysisResponseList(analyses []Analysis) []AnalysisResponse {
	responses := make([]AnalysisResponse, 0, len(analyses))
	for _, a := range analyses {
		responses = append(responses, ToAnalysisResponse(&a))
	}
	return responses
}
