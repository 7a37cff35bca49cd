// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sheetlens/api/internal/core"
)

type verifierStub struct {
	verifyFunc func(ctx context.Context, token string) (*AccessTokenClaims, error)
}

func (s *verifierStub) VerifyAccessToken(
	ctx context.Context,
	token string,
) (*AccessTokenClaims, error) {
	return s.verifyFunc(ctx, token)
}

type resolverStub struct {
	existsFunc func(ctx context.Context, userID string) (bool, error)
}

func (s *resolverStub) IdentityExists(
	ctx context.Context,
	userID string,
) (bool, error) {
	return s.existsFunc(ctx, userID)
}

func okVerifier(claims *AccessTokenClaims) *verifierStub {
	return &verifierStub{
		verifyFunc: func(_ context.Context, _ string) (*AccessTokenClaims, error) {
			return claims, nil
		},
	}
}

func alwaysExists() *resolverStub {
	return &resolverStub{
		existsFunc: func(_ context.Context, _ string) (bool, error) {
			return true, nil
		},
	}
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope.Error.Code
}

func TestAuthenticatorMissingToken(t *testing.T) {
	handler := Authenticator(okVerifier(nil), alwaysExists())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run without a token")
		}),
	)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/files/my-files", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatorExpiredToken(t *testing.T) {
	verifier := &verifierStub{
		verifyFunc: func(_ context.Context, _ string) (*AccessTokenClaims, error) {
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
		},
	}
	handler := Authenticator(verifier, alwaysExists())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run with an expired token")
		}),
	)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "TOKEN_EXPIRED", errorCode(t, rec.Body.Bytes()))
}

func TestAuthenticatorDeletedAccount(t *testing.T) {
	resolver := &resolverStub{
		existsFunc: func(_ context.Context, userID string) (bool, error) {
			require.Equal(t, "user-1", userID)
			return false, nil
		},
	}
	claims := &AccessTokenClaims{UserID: "user-1", Role: "user"}
	handler := Authenticator(okVerifier(claims), resolver)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run for a deleted account")
		}),
	)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/files/my-files", nil)
	req.Header.Set("Authorization", "Bearer still-valid-token")
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatorInjectsIdentity(t *testing.T) {
	claims := &AccessTokenClaims{UserID: "user-1", Role: "admin"}
	var gotID, gotRole string
	handler := Authenticator(okVerifier(claims), alwaysExists())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotID = GetUserID(r.Context())
			gotRole = GetUserRole(r.Context())
			w.WriteHeader(http.StatusNoContent)
		}),
	)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "user-1", gotID)
	require.Equal(t, "admin", gotRole)
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name string
		role string
		want int
	}{
		{"admin passes", "admin", http.StatusOK},
		{"regular user forbidden", "user", http.StatusForbidden},
		{"anonymous unauthorized", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin/stats", nil)
			if tt.role != "" {
				ctx := context.WithValue(req.Context(), UserRoleKey, tt.role)
				req = req.WithContext(ctx)
			}

			rec := httptest.NewRecorder()
			RequireAdmin(next).ServeHTTP(rec, req)
			require.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc123", "abc123"},
		{"bearer abc123", "abc123"},
		{"Basic dXNlcjpwYXNz", ""},
		{"Bearer", ""},
		{"", ""},
	}

	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		require.Equal(t, tt.want, ExtractToken(req), "header=%q", tt.header)
	}
}
