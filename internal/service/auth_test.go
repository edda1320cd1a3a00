package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudkitchenpro/backend/internal/models"
	"github.com/cloudkitchenpro/backend/internal/testhelpers"
)

func TestAuthService(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	ctx := context.Background()
	auth := NewAuthService(db, "test-secret")

	t.Run("register issues a valid token", func(t *testing.T) {
		user, token, err := auth.Register(ctx, "Alice", "alice@example.com", "password123", models.RoleChef)
		require.NoError(t, err)
		require.NotEmpty(t, token)
		assert.Equal(t, models.RoleChef, user.Role)

		claims, err := auth.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, "Alice", claims.Name)
		assert.Equal(t, models.RoleChef, claims.Role)
	})

	t.Run("register rejects unknown roles", func(t *testing.T) {
		_, _, err := auth.Register(ctx, "Eve", "eve@example.com", "password123", "superuser")
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("register rejects duplicate emails", func(t *testing.T) {
		_, _, err := auth.Register(ctx, "Alice Again", "alice@example.com", "password123", models.RoleChef)
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("login verifies credentials", func(t *testing.T) {
		user, token, err := auth.Login(ctx, "alice@example.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "Alice", user.Name)

		_, _, err = auth.Login(ctx, "alice@example.com", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, _, err = auth.Login(ctx, "nobody@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("tokens from another secret are rejected", func(t *testing.T) {
		other := NewAuthService(db, "different-secret")
		user := testhelpers.CreateTestUser(t, db, "Mallory", "mallory@example.com", models.RoleChef)
		token, err := other.GenerateToken(user)
		require.NoError(t, err)

		_, err = auth.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage tokens are rejected", func(t *testing.T) {
		_, err := auth.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
