// AngelaMos | 2026
// handler_test.go

package analysis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/sheetlens/api/internal/middleware"
)

func asUser(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), middleware.UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newTestRouter(svc *Service, userID string) http.Handler {
	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r, asUser(userID))
	return r
}

func TestAppendEndpoint(t *testing.T) {
	repo := &analysisRepoStub{
		appendFunc: func(_ context.Context, a *Analysis) error {
			a.Position = 0
			return nil
		},
	}
	router := newTestRouter(
		NewService(repo, ownedFiles("user-1", "file-1")),
		"user-1",
	)

	body := `{"chartType":"bar","xAxis":"region","yAxis":"sales"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/analysis/file-1", strings.NewReader(body))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "bar", resp.ChartType)
	require.Equal(t, "region", resp.XAxis)
	require.Equal(t, 0, resp.Position)
}

func TestAppendEndpointRejectsUnknownChartType(t *testing.T) {
	router := newTestRouter(
		NewService(&analysisRepoStub{}, ownedFiles("user-1", "file-1")),
		"user-1",
	)

	body := `{"chartType":"scatter","xAxis":"a","yAxis":"b"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/analysis/file-1", strings.NewReader(body))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAppendEndpointUnownedFile(t *testing.T) {
	router := newTestRouter(
		NewService(&analysisRepoStub{}, ownedFiles("someone-else", "file-1")),
		"user-1",
	)

	body := `{"chartType":"pie","xAxis":"a","yAxis":"b"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/analysis/file-1", strings.NewReader(body))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

// The aggregate history route must win over the {fileID} pattern.
func TestUserHistoryRouteNotShadowedByFileID(t *testing.T) {
	repo := &analysisRepoStub{
		historyByOwnerFunc: func(_ context.Context, _ string) ([]FileHistory, error) {
			return []FileHistory{
				{
					FileID:   "file-1",
					FileName: "sales.xlsx",
					Analyses: []Analysis{},
				},
			}, nil
		},
	}
	router := newTestRouter(
		NewService(repo, ownedFiles("user-1", "file-1")),
		"user-1",
	)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/analysis/history", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var entries []UserHistoryEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	require.Equal(t, "sales.xlsx", entries[0].FileName)
}

func TestFileHistoryEndpoint(t *testing.T) {
	repo := &analysisRepoStub{
		listByFileFunc: func(_ context.Context, fileID string) ([]Analysis, error) {
			require.Equal(t, "file-1", fileID)
			return []Analysis{
				{ID: "a1", ChartType: "line", Position: 0},
				{ID: "a2", ChartType: "3d", Position: 1},
			}, nil
		},
	}
	router := newTestRouter(
		NewService(repo, ownedFiles("user-1", "file-1")),
		"user-1",
	)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/analysis/file-1/history", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	require.Equal(t, "3d", resp[1].ChartType)
}
