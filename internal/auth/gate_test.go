package auth

import (
	"context"
	"testing"

	"connectplus/internal/db"
	"connectplus/internal/store"
	"connectplus/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupGate(t *testing.T) (*Gate, *store.UserRepository) {
	t.Helper()

	conn, err := db.Open(context.Background(), db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	users := store.NewUserRepository(conn)
	gate, err := NewGate(users, bcrypt.MinCost)
	require.NoError(t, err)

	return gate, users
}

func TestAuthenticate(t *testing.T) {
	gate, _ := setupGate(t)
	ctx := context.Background()

	user, err := gate.Register(ctx, "admin@example.com", "password123")
	require.NoError(t, err)

	identity, err := gate.Authenticate(ctx, "admin@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, &types.Identity{ID: user.ID, Email: "admin@example.com"}, identity)
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	gate, _ := setupGate(t)
	ctx := context.Background()

	_, err := gate.Register(ctx, "admin@example.com", "password123")
	require.NoError(t, err)

	_, wrongPassword := gate.Authenticate(ctx, "admin@example.com", "wrong-password")
	_, unknownEmail := gate.Authenticate(ctx, "nobody@example.com", "password123")
	_, wrongCase := gate.Authenticate(ctx, "Admin@example.com", "password123")
	_, empty := gate.Authenticate(ctx, "", "")

	for _, err := range []error{wrongPassword, unknownEmail, wrongCase, empty} {
		assert.ErrorIs(t, err, types.ErrInvalidCredentials)
		assert.Equal(t, wrongPassword.Error(), err.Error())
	}
}

func TestPasswordIsStoredHashed(t *testing.T) {
	gate, users := setupGate(t)
	ctx := context.Background()

	_, err := gate.Register(ctx, "a@example.com", "password123")
	require.NoError(t, err)

	stored, err := users.UserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("password123")))
}

func TestChangePassword(t *testing.T) {
	gate, _ := setupGate(t)
	ctx := context.Background()

	user, err := gate.Register(ctx, "a@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, gate.ChangePassword(ctx, user.ID, "new-password"))

	_, err = gate.Authenticate(ctx, "a@example.com", "password123")
	assert.ErrorIs(t, err, types.ErrInvalidCredentials)

	_, err = gate.Authenticate(ctx, "a@example.com", "new-password")
	assert.NoError(t, err)

	err = gate.ChangePassword(ctx, "missing", "new-password")
	assert.ErrorIs(t, err, types.ErrUserNotFound)
}

func TestRegisterDuplicate(t *testing.T) {
	gate, _ := setupGate(t)
	ctx := context.Background()

	_, err := gate.Register(ctx, "a@example.com", "password123")
	require.NoError(t, err)

	_, err = gate.Register(ctx, "a@example.com", "password456")
	assert.ErrorIs(t, err, types.ErrUserExists)
}

func TestHashPasswordCost(t *testing.T) {
	hash, err := HashPassword("password123", bcrypt.MinCost)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestPasswordTooShort(t *testing.T) {
	assert.True(t, PasswordTooShort("short"))
	assert.True(t, PasswordTooShort("ééééé"), "multi-byte characters count once")
	assert.False(t, PasswordTooShort("password"))
	assert.False(t, PasswordTooShort("éééééééé"))
}
