package store

import (
	"context"
	"testing"

	"connectplus/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserLifecycle(t *testing.T) {
	repo := NewUserRepository(setupDB(t))
	ctx := context.Background()

	created, err := repo.CreateUser(ctx, &types.User{Email: "admin@example.com", Password: "hash-1"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Empty(t, created.Password)

	_, err = repo.CreateUser(ctx, &types.User{Email: "admin@example.com", Password: "hash-2"})
	assert.ErrorIs(t, err, types.ErrUserExists)

	byEmail, err := repo.UserByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hash-1", byEmail.Password)

	_, err = repo.UserByEmail(ctx, "ADMIN@example.com")
	assert.ErrorIs(t, err, types.ErrUserNotFound)

	public, err := repo.User(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, public.Password)
	assert.Equal(t, "admin@example.com", public.Email)

	ok, err := repo.UpdatePassword(ctx, created.ID, "hash-3")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.UpdatePassword(ctx, "missing", "hash-3")
	require.NoError(t, err)
	assert.False(t, ok)

	byEmail, err = repo.UserByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hash-3", byEmail.Password)

	users, err := repo.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Empty(t, users[0].Password)

	removed, err := repo.DeleteUser(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	count, err := repo.CountUsers(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUniqueViolationDetectedAtStorageLayer(t *testing.T) {
	conn := setupDB(t)
	ctx := context.Background()

	_, err := conn.ExecContext(ctx, `INSERT INTO users (id, email, password) VALUES ('a', 'x@example.com', 'h')`)
	require.NoError(t, err)

	_, err = conn.ExecContext(ctx, `INSERT INTO users (id, email, password) VALUES ('b', 'x@example.com', 'h')`)
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err))
}
