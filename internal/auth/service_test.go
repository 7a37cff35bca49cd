// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sheetlens/api/internal/core"
)

type userProviderStub struct {
	getByEmailFunc     func(ctx context.Context, email string) (*UserInfo, error)
	getByIDFunc        func(ctx context.Context, id string) (*UserInfo, error)
	createFunc         func(ctx context.Context, email, hash string) (*UserInfo, error)
	updatePasswordFunc func(ctx context.Context, userID, hash string) error
}

func (s *userProviderStub) GetByEmail(
	ctx context.Context,
	email string,
) (*UserInfo, error) {
	return s.getByEmailFunc(ctx, email)
}

func (s *userProviderStub) GetByID(
	ctx context.Context,
	id string,
) (*UserInfo, error) {
	return s.getByIDFunc(ctx, id)
}

func (s *userProviderStub) Create(
	ctx context.Context,
	email, hash string,
) (*UserInfo, error) {
	return s.createFunc(ctx, email, hash)
}

func (s *userProviderStub) UpdatePassword(
	ctx context.Context,
	userID, hash string,
) error {
	if s.updatePasswordFunc != nil {
		return s.updatePasswordFunc(ctx, userID, hash)
	}
	return nil
}

type tokenIssuerStub struct{}

func (tokenIssuerStub) CreateAccessToken(claims AccessTokenClaims) (string, error) {
	return "token-for-" + claims.UserID, nil
}

func (tokenIssuerStub) TokenTTL() time.Duration {
	return 168 * time.Hour
}

func TestLoginSuccess(t *testing.T) {
	hash, err := core.HashPassword("valid-password")
	require.NoError(t, err)

	users := &userProviderStub{
		getByEmailFunc: func(_ context.Context, email string) (*UserInfo, error) {
			require.Equal(t, "dana@example.com", email)
			return &UserInfo{
				ID:           "user-1",
				Email:        email,
				PasswordHash: hash,
				Role:         "user",
			}, nil
		},
	}
	svc := NewService(tokenIssuerStub{}, users)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "dana@example.com",
		Password: "valid-password",
	})
	require.NoError(t, err)
	require.Equal(t, "token-for-user-1", resp.Token)
	require.Equal(t, "Bearer", resp.TokenType)
	require.Equal(t, "user-1", resp.User.ID)
	require.WithinDuration(
		t,
		time.Now().Add(168*time.Hour),
		resp.ExpiresAt,
		time.Minute,
	)
}

func TestLoginUnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	hash, err := core.HashPassword("the-real-password")
	require.NoError(t, err)

	users := &userProviderStub{
		getByEmailFunc: func(_ context.Context, email string) (*UserInfo, error) {
			if email == "known@example.com" {
				return &UserInfo{
					ID:           "user-1",
					Email:        email,
					PasswordHash: hash,
				}, nil
			}
			return nil, core.ErrNotFound
		},
	}
	svc := NewService(tokenIssuerStub{}, users)

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "anything-at-all",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "known@example.com",
		Password: "the-wrong-password",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterHashesPassword(t *testing.T) {
	users := &userProviderStub{
		createFunc: func(_ context.Context, email, hash string) (*UserInfo, error) {
			require.NotEqual(t, "plaintext-pass", hash)

			valid, verr := core.VerifyPassword("plaintext-pass", hash)
			require.NoError(t, verr)
			require.True(t, valid)

			return &UserInfo{ID: "user-2", Email: email, Role: "user"}, nil
		},
	}
	svc := NewService(tokenIssuerStub{}, users)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "new@example.com",
		Password: "plaintext-pass",
	})
	require.NoError(t, err)
	require.Equal(t, "token-for-user-2", resp.Token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := &userProviderStub{
		createFunc: func(_ context.Context, _, _ string) (*UserInfo, error) {
			return nil, core.ErrDuplicateKey
		},
	}
	svc := NewService(tokenIssuerStub{}, users)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "taken@example.com",
		Password: "some-password",
	})
	require.ErrorIs(t, err, ErrEmailExists)
}

func TestGetCurrentUserGone(t *testing.T) {
	users := &userProviderStub{
		getByIDFunc: func(_ context.Context, _ string) (*UserInfo, error) {
			return nil, core.ErrNotFound
		},
	}
	svc := NewService(tokenIssuerStub{}, users)

	_, err := svc.GetCurrentUser(context.Background(), "deleted-user")
	require.ErrorIs(t, err, core.ErrNotFound)
}
