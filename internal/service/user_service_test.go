package service

import (
	"context"
	"io"
	"testing"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *database.DB {
	t.Helper()
	logger := zerolog.New(io.Discard)
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func strPtr(s string) *string { return &s }

func TestUserService(t *testing.T) {
	db := setupDB(t)
	logger := zerolog.Nop()
	svc := NewUserService(db, &logger)
	ctx := context.Background()

	ann, err := svc.CreateUser(ctx, &models.User{Name: " Ann ", Email: "ann@example.com"})
	require.NoError(t, err)
	assert.NotZero(t, ann.ID)
	assert.Equal(t, "Ann", ann.Name)

	t.Run("Validation", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, &models.User{Name: "", Email: "x@example.com"})
		assert.ErrorIs(t, err, domain.ErrValidation)

		_, err = svc.CreateUser(ctx, &models.User{Name: "x", Email: ""})
		assert.ErrorIs(t, err, domain.ErrValidation)

		_, err = svc.CreateUser(ctx, &models.User{Name: "x", Email: "not-an-email"})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.EqualError(t, err, "invalid email format: not-an-email")
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, &models.User{Name: "Other", Email: "ann@example.com"})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("Update", func(t *testing.T) {
		updated, err := svc.UpdateUser(ctx, ann.ID, models.UserPatch{Name: strPtr("Anna")})
		require.NoError(t, err)
		assert.Equal(t, "Anna", updated.Name)
		assert.Equal(t, "ann@example.com", updated.Email)

		updated, err = svc.UpdateUser(ctx, ann.ID, models.UserPatch{Email: strPtr("anna@example.com")})
		require.NoError(t, err)
		assert.Equal(t, "anna@example.com", updated.Email)

		_, err = svc.UpdateUser(ctx, ann.ID, models.UserPatch{Email: strPtr("broken")})
		assert.ErrorIs(t, err, domain.ErrValidation)

		_, err = svc.UpdateUser(ctx, 404, models.UserPatch{Name: strPtr("x")})
		assert.ErrorIs(t, err, domain.ErrNotFound)

		bob, err := svc.CreateUser(ctx, &models.User{Name: "Bob", Email: "bob@example.com"})
		require.NoError(t, err)
		_, err = svc.UpdateUser(ctx, bob.ID, models.UserPatch{Email: strPtr("anna@example.com")})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("ListAndDelete", func(t *testing.T) {
		users, err := svc.ListUsers(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 2)

		require.NoError(t, svc.DeleteUser(ctx, ann.ID))
		_, err = svc.GetUserByID(ctx, ann.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.ErrorIs(t, svc.DeleteUser(ctx, ann.ID), domain.ErrNotFound)
	})
}
