package auth

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"connectplus/internal/store"
	"connectplus/pkg/types"

	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 8

// PasswordTooShort counts characters, not bytes.
func PasswordTooShort(password string) bool {
	return utf8.RuneCountInString(password) < MinPasswordLength
}

// Gate verifies credentials against stored bcrypt hashes.
type Gate struct {
	users *store.UserRepository
	cost  int

	// compared against when the email is unknown so both failure paths
	// spend the same time hashing
	dummyHash []byte
}

func NewGate(users *store.UserRepository, cost int) (*Gate, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("connectplus:no-such-user"), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}

	return &Gate{users: users, cost: cost, dummyHash: dummy}, nil
}

// HashPassword returns the bcrypt hash of password at cost.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (g *Gate) HashPassword(password string) (string, error) {
	return HashPassword(password, g.cost)
}

// Authenticate returns the identity for email when password matches. Unknown
// emails and wrong passwords both yield types.ErrInvalidCredentials.
func (g *Gate) Authenticate(ctx context.Context, email, password string) (*types.Identity, error) {
	if email == "" || password == "" {
		return nil, types.ErrInvalidCredentials
	}

	user, err := g.users.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, types.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(g.dummyHash, []byte(password))
			return nil, types.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, types.ErrInvalidCredentials
	}

	return &types.Identity{ID: user.ID, Email: user.Email}, nil
}

// Register hashes password and creates the account.
func (g *Gate) Register(ctx context.Context, email, password string) (*types.User, error) {
	hash, err := g.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return g.users.CreateUser(ctx, &types.User{Email: email, Password: hash})
}

func (g *Gate) ChangePassword(ctx context.Context, userID, newPassword string) error {
	hash, err := g.HashPassword(newPassword)
	if err != nil {
		return err
	}

	ok, err := g.users.UpdatePassword(ctx, userID, hash)
	if err != nil {
		return err
	}
	if !ok {
		return types.ErrUserNotFound
	}

	return nil
}
