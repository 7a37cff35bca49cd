// AngelaMos | 2026
// handler_test.go

package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetPlatformStats(t *testing.T) {
	handler := NewHandler(HandlerConfig{
		CountUsers: func(_ context.Context) (int, error) {
			return 12, nil
		},
		CountFiles: func(_ context.Context) (int, error) {
			return 48, nil
		},
		CountAnalyses: func(_ context.Context) (int, error) {
			return 96, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.GetPlatformStats(rec, httptest.NewRequest("GET", "/admin/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var stats PlatformStatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	require.Equal(t, 12, stats.TotalUsers)
	require.Equal(t, 48, stats.TotalFiles)
	require.Equal(t, 96, stats.TotalAnalyses)
}

func TestGetPlatformStatsCamelCaseKeys(t *testing.T) {
	handler := NewHandler(HandlerConfig{
		CountUsers:    func(_ context.Context) (int, error) { return 0, nil },
		CountFiles:    func(_ context.Context) (int, error) { return 0, nil },
		CountAnalyses: func(_ context.Context) (int, error) { return 0, nil },
	})

	rec := httptest.NewRecorder()
	handler.GetPlatformStats(rec, httptest.NewRequest("GET", "/admin/stats", nil))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	require.Contains(t, raw, "totalUsers")
	require.Contains(t, raw, "totalFiles")
	require.Contains(t, raw, "totalAnalyses")
}

func TestGetPlatformStatsCountFailure(t *testing.T) {
	handler := NewHandler(HandlerConfig{
		CountUsers: func(_ context.Context) (int, error) {
			return 0, errors.New("db down")
		},
		CountFiles:    func(_ context.Context) (int, error) { return 0, nil },
		CountAnalyses: func(_ context.Context) (int, error) { return 0, nil },
	})

	rec := httptest.NewRecorder()
	handler.GetPlatformStats(rec, httptest.NewRequest("GET", "/admin/stats", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetRuntimeStats(t *testing.T) {
	handler := NewHandler(HandlerConfig{})

	rec := httptest.NewRecorder()
	handler.GetRuntimeStats(rec, httptest.NewRequest("GET", "/admin/stats/runtime", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var stats RuntimeStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	require.NotEmpty(t, stats.GoVersion)
	require.Positive(t, stats.NumCPU)
}
