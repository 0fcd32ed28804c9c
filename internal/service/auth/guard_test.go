package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-portal/internal/domain/entity"
	"news-portal/internal/service/auth"
)

func TestGuard_Authenticate(t *testing.T) {
	users := newStubUsers()
	alice := &entity.User{Name: "Alice", Email: "alice@example.com", Role: entity.RoleAdmin}
	require.NoError(t, users.Create(context.Background(), alice))

	tokens := auth.NewTokenManager(testSecret, time.Hour)
	guard := auth.NewGuard(tokens, users)

	t.Run("valid token resolves the full principal", func(t *testing.T) {
		token, _, err := tokens.Issue(alice)
		require.NoError(t, err)

		p, err := guard.Authenticate(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, entity.Principal{ID: alice.ID, Name: "Alice", Email: "alice@example.com", Role: entity.RoleAdmin}, p)
	})

	t.Run("empty credential", func(t *testing.T) {
		_, err := guard.Authenticate(context.Background(), "")
		assert.ErrorIs(t, err, entity.ErrNotAuthenticated)
	})

	t.Run("vanished user", func(t *testing.T) {
		token, _, err := tokens.Issue(&entity.User{ID: "ghost", Role: entity.RoleUser})
		require.NoError(t, err)

		_, err = guard.Authenticate(context.Background(), token)
		assert.ErrorIs(t, err, entity.ErrNotAuthenticated)
	})

	t.Run("repository failure is not an auth error", func(t *testing.T) {
		token, _, err := tokens.Issue(alice)
		require.NoError(t, err)

		broken := newStubUsers()
		broken.err = errors.New("db down")
		_, err = auth.NewGuard(tokens, broken).Authenticate(context.Background(), token)
		require.Error(t, err)
		var authErr *entity.AuthError
		assert.False(t, errors.As(err, &authErr))
	})
}

func TestAuthorize(t *testing.T) {
	admin := entity.Principal{ID: "a", Role: entity.RoleAdmin}
	user := entity.Principal{ID: "u", Role: entity.RoleUser}

	tests := []struct {
		name    string
		p       entity.Principal
		roles   []entity.Role
		wantErr error
	}{
		{"admin on admin route", admin, []entity.Role{entity.RoleAdmin}, nil},
		{"user on shared route", user, []entity.Role{entity.RoleUser, entity.RoleAdmin}, nil},
		{"user on admin route", user, []entity.Role{entity.RoleAdmin}, entity.ErrRoleNotAllowed},
		{"anonymous", entity.Principal{}, []entity.Role{entity.RoleUser}, entity.ErrNotAuthenticated},
		{"no roles allowed", admin, nil, entity.ErrRoleNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.Authorize(tt.p, tt.roles...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthorize_MessageNamesRole(t *testing.T) {
	err := auth.Authorize(entity.Principal{ID: "u", Role: entity.RoleUser}, entity.RoleAdmin)
	assert.EqualError(t, err, "user role user is not authorized to access this route")
}
