// AngelaMos | 2026
// scenario_test.go

package analysis

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sheetlens/api/internal/auth"
	"github.com/sheetlens/api/internal/config"
	"github.com/sheetlens/api/internal/core"
	"github.com/sheetlens/api/internal/file"
	"github.com/sheetlens/api/internal/storage"
)

// In-memory stand-ins that keep real state, so the services can be
// exercised together the way a request sequence would.

type memUsers struct {
	mu    sync.Mutex
	users map[string]*auth.UserInfo
	next  int
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*auth.UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, core.ErrNotFound
}

func (m *memUsers) GetByID(_ context.Context, id string) (*auth.UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, core.ErrNotFound
}

func (m *memUsers) Create(_ context.Context, email, hash string) (*auth.UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return nil, core.ErrDuplicateKey
		}
	}
	if m.users == nil {
		m.users = make(map[string]*auth.UserInfo)
	}
	m.next++
	u := &auth.UserInfo{
		ID:           fmt.Sprintf("user-%d", m.next),
		Email:        email,
		PasswordHash: hash,
		Role:         "user",
	}
	m.users[u.ID] = u
	return u, nil
}

func (m *memUsers) UpdatePassword(_ context.Context, userID, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[userID]; ok {
		u.PasswordHash = hash
		return nil
	}
	return core.ErrNotFound
}

type memFiles struct {
	mu    sync.Mutex
	files map[string]*file.File
}

func (m *memFiles) Create(_ context.Context, f *file.File) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.files == nil {
		m.files = make(map[string]*file.File)
	}
	cp := *f
	m.files[f.ID] = &cp
	return nil
}

func (m *memFiles) GetOwned(_ context.Context, id, userID string) (*file.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.files[id]; ok && f.UserID == userID {
		cp := *f
		return &cp, nil
	}
	return nil, core.ErrNotFound
}

func (m *memFiles) ListByOwner(_ context.Context, userID string) ([]file.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []file.File
	for _, f := range m.files {
		if f.UserID == userID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (m *memFiles) DeleteOwned(_ context.Context, id, userID string) (*file.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.files[id]; ok && f.UserID == userID {
		delete(m.files, id)
		return f, nil
	}
	return nil, core.ErrNotFound
}

func (m *memFiles) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files), nil
}

type memAnalyses struct {
	mu     sync.Mutex
	byFile map[string][]Analysis
}

func (m *memAnalyses) Append(_ context.Context, a *Analysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.byFile == nil {
		m.byFile = make(map[string][]Analysis)
	}
	a.Position = len(m.byFile[a.FileID])
	m.byFile[a.FileID] = append(m.byFile[a.FileID], *a)
	return nil
}

func (m *memAnalyses) ListByFile(_ context.Context, fileID string) ([]Analysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Analysis(nil), m.byFile[fileID]...), nil
}

func (m *memAnalyses) HistoryByOwner(_ context.Context, _ string) ([]FileHistory, error) {
	return nil, nil
}

func (m *memAnalyses) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, list := range m.byFile {
		n += len(list)
	}
	return n, nil
}

type staticIssuer struct{}

func (staticIssuer) CreateAccessToken(claims auth.AccessTokenClaims) (string, error) {
	return "tok-" + claims.UserID, nil
}

func (staticIssuer) TokenTTL() time.Duration {
	return time.Hour
}

func buildScenarioWorkbook(t *testing.T) *bytes.Buffer {
	t.Helper()

	wb := excelize.NewFile()
	sheet := wb.GetSheetName(0)
	for i, row := range [][]any{
		{"region", "sales"},
		{"north", 120},
		{"south", 80},
	} {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, wb.SetSheetRow(sheet, cell, &row))
	}

	buf, err := wb.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestRegisterUploadAnalyzeDeleteFlow(t *testing.T) {
	ctx := context.Background()

	authSvc := auth.NewService(staticIssuer{}, &memUsers{})
	store, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	fileSvc := file.NewService(&memFiles{}, store, config.UploadConfig{
		MaxSizeBytes: 10 << 20,
		AllowedExts:  []string{"xls", "xlsx"},
	})
	analysisSvc := NewService(&memAnalyses{}, fileSvc)

	// register
	authResp, err := authSvc.Register(ctx, auth.RegisterRequest{
		Email:    "flow@example.com",
		Password: "long-enough-pass",
	})
	require.NoError(t, err)
	userID := authResp.User.ID

	// login round-trips the same credentials
	_, err = authSvc.Login(ctx, auth.LoginRequest{
		Email:    "flow@example.com",
		Password: "long-enough-pass",
	})
	require.NoError(t, err)

	// upload a real workbook
	wb := buildScenarioWorkbook(t)
	uploaded, err := fileSvc.Upload(
		ctx, userID, "sales.xlsx", wb, int64(wb.Len()), "",
	)
	require.NoError(t, err)

	// read it back as headers+data
	sheet, err := fileSvc.GetData(ctx, userID, uploaded.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"region", "sales"}, sheet.Headers)
	require.Len(t, sheet.Rows, 2)

	// append two analyses, positions must run 0,1
	first, err := analysisSvc.Append(ctx, userID, uploaded.ID, &AppendRequest{
		ChartType: "bar", XAxis: "region", YAxis: "sales",
	})
	require.NoError(t, err)
	require.Equal(t, 0, first.Position)

	second, err := analysisSvc.Append(ctx, userID, uploaded.ID, &AppendRequest{
		ChartType: "pie", XAxis: "region", YAxis: "sales",
	})
	require.NoError(t, err)
	require.Equal(t, 1, second.Position)

	history, err := analysisSvc.HistoryForFile(ctx, userID, uploaded.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, "bar", history[0].ChartType)
	require.Equal(t, "pie", history[1].ChartType)

	// another user sees none of it
	_, err = analysisSvc.HistoryForFile(ctx, "someone-else", uploaded.ID)
	require.ErrorIs(t, err, core.ErrNotFound)

	// delete the file; its history becomes unreachable
	require.NoError(t, fileSvc.Delete(ctx, userID, uploaded.ID))

	_, err = analysisSvc.HistoryForFile(ctx, userID, uploaded.ID)
	require.ErrorIs(t, err, core.ErrNotFound)
}
