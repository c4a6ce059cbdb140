package auth

import (
	"errors"
	"fmt"
	"time"

	"connectplus/pkg/types"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

const tokenIssuer = "connectplus"

var ErrInvalidToken = errors.New("invalid session token")

// Issuer mints and verifies HS256 session tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret []byte, ttl time.Duration) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("session secret must not be empty")
	}
	return &Issuer{secret: secret, ttl: ttl}, nil
}

func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

func (i *Issuer) Issue(identity *types.Identity) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(i.ttl)

	token, err := jwt.NewBuilder().
		Issuer(tokenIssuer).
		Subject(identity.ID).
		IssuedAt(now).
		Expiration(expiresAt).
		Claim("email", identity.Email).
		Build()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to build session token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), i.secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return string(signed), expiresAt, nil
}

func (i *Issuer) Verify(raw string) (*types.Identity, error) {
	token, err := jwt.Parse(
		[]byte(raw),
		jwt.WithKey(jwa.HS256(), i.secret),
		jwt.WithValidate(true),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if err := jwt.Validate(token, jwt.WithIssuer(tokenIssuer)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	userID, ok := token.Subject()
	if !ok || userID == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	var email string
	_ = token.Get("email", &email)

	return &types.Identity{ID: userID, Email: email}, nil
}
