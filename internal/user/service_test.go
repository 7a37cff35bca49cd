// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sheetlens/api/internal/core"
)

type repoStub struct {
	createFunc         func(ctx context.Context, user *User) error
	getByIDFunc        func(ctx context.Context, id string) (*User, error)
	getByEmailFunc     func(ctx context.Context, email string) (*User, error)
	existsByIDFunc     func(ctx context.Context, id string) (bool, error)
	updateFunc         func(ctx context.Context, user *User) error
	updatePasswordFunc func(ctx context.Context, id, hash string) error
	deleteFunc         func(ctx context.Context, id string) error
	listFunc           func(ctx context.Context) ([]User, error)
	countNonAdminFunc  func(ctx context.Context) (int, error)
}

func (s *repoStub) Create(ctx context.Context, user *User) error {
	return s.createFunc(ctx, user)
}

func (s *repoStub) GetByID(ctx context.Context, id string) (*User, error) {
	return s.getByIDFunc(ctx, id)
}

func (s *repoStub) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.getByEmailFunc(ctx, email)
}

func (s *repoStub) ExistsByID(ctx context.Context, id string) (bool, error) {
	return s.existsByIDFunc(ctx, id)
}

func (s *repoStub) Update(ctx context.Context, user *User) error {
	return s.updateFunc(ctx, user)
}

func (s *repoStub) UpdatePassword(ctx context.Context, id, hash string) error {
	return s.updatePasswordFunc(ctx, id, hash)
}

func (s *repoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFunc(ctx, id)
}

func (s *repoStub) List(ctx context.Context) ([]User, error) {
	return s.listFunc(ctx)
}

func (s *repoStub) CountNonAdmin(ctx context.Context) (int, error) {
	return s.countNonAdminFunc(ctx)
}

func TestCreateDefaultsToUserRole(t *testing.T) {
	repo := &repoStub{
		createFunc: func(_ context.Context, user *User) error {
			require.NotEmpty(t, user.ID)
			require.Equal(t, "mixed@example.com", user.Email)
			require.Equal(t, RoleUser, user.Role)
			return nil
		},
	}
	svc := NewService(repo)

	info, err := svc.Create(context.Background(), "Mixed@Example.COM", "hash")
	require.NoError(t, err)
	require.Equal(t, "mixed@example.com", info.Email)
	require.Equal(t, string(RoleUser), info.Role)
}

func TestDeleteUserRefusesAdmins(t *testing.T) {
	deleted := false
	repo := &repoStub{
		getByIDFunc: func(_ context.Context, id string) (*User, error) {
			return &User{ID: id, Role: RoleAdmin}, nil
		},
		deleteFunc: func(_ context.Context, _ string) error {
			deleted = true
			return nil
		},
	}
	svc := NewService(repo)

	err := svc.DeleteUser(context.Background(), "admin-1")
	require.ErrorIs(t, err, core.ErrForbidden)
	require.False(t, deleted, "admin delete must never reach the repository")
}

func TestDeleteUserRemovesRegularUser(t *testing.T) {
	deleted := false
	repo := &repoStub{
		getByIDFunc: func(_ context.Context, id string) (*User, error) {
			return &User{ID: id, Role: RoleUser}, nil
		},
		deleteFunc: func(_ context.Context, id string) error {
			require.Equal(t, "user-1", id)
			deleted = true
			return nil
		},
	}
	svc := NewService(repo)

	require.NoError(t, svc.DeleteUser(context.Background(), "user-1"))
	require.True(t, deleted)
}

func TestDeleteUserMissing(t *testing.T) {
	repo := &repoStub{
		getByIDFunc: func(_ context.Context, _ string) (*User, error) {
			return nil, core.ErrNotFound
		},
	}
	svc := NewService(repo)

	err := svc.DeleteUser(context.Background(), "ghost")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpdateUserRejectsUnknownRole(t *testing.T) {
	repo := &repoStub{
		getByIDFunc: func(_ context.Context, id string) (*User, error) {
			return &User{ID: id, Email: "a@b.com", Role: RoleUser}, nil
		},
	}
	svc := NewService(repo)

	role := "superadmin"
	_, err := svc.UpdateUser(
		context.Background(),
		"user-1",
		UpdateUserRequest{Role: &role},
	)
	require.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestUpdateUserChangesRoleAndEmail(t *testing.T) {
	repo := &repoStub{
		getByIDFunc: func(_ context.Context, id string) (*User, error) {
			return &User{ID: id, Email: "old@example.com", Role: RoleUser}, nil
		},
		updateFunc: func(_ context.Context, user *User) error {
			require.Equal(t, "new@example.com", user.Email)
			require.Equal(t, RoleAdmin, user.Role)
			return nil
		},
	}
	svc := NewService(repo)

	email := "New@Example.com"
	role := "admin"
	updated, err := svc.UpdateUser(
		context.Background(),
		"user-1",
		UpdateUserRequest{Email: &email, Role: &role},
	)
	require.NoError(t, err)
	require.Equal(t, "new@example.com", updated.Email)
	require.Equal(t, RoleAdmin, updated.Role)
}

func TestIdentityExists(t *testing.T) {
	repo := &repoStub{
		existsByIDFunc: func(_ context.Context, id string) (bool, error) {
			return id == "alive", nil
		},
	}
	svc := NewService(repo)

	ok, err := svc.IdentityExists(context.Background(), "alive")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.IdentityExists(context.Background(), "gone")
	require.NoError(t, err)
	require.False(t, ok)
}
