package seed

import (
	"context"
	"errors"
	"fmt"

	"connectplus/internal/auth"
	"connectplus/internal/store"
	"connectplus/pkg/types"
)

// SeedAdmin creates the default administrator when no accounts exist yet.
func SeedAdmin(ctx context.Context, gate *auth.Gate, users *store.UserRepository, email, password string) (bool, error) {
	count, err := users.CountUsers(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		fmt.Printf("Admin seed skipped: %d users already exist\n", count)
		return false, nil
	}

	if _, err := gate.Register(ctx, email, password); err != nil {
		return false, fmt.Errorf("failed to create admin user %s: %w", email, err)
	}

	fmt.Printf("Admin user created: %s\n", email)
	return true, nil
}

// ResetAdminPassword sets the password for email, creating the account when
// missing, and then checks the new credentials authenticate.
func ResetAdminPassword(ctx context.Context, gate *auth.Gate, users *store.UserRepository, email, password string) error {
	existing, err := users.UserByEmail(ctx, email)
	switch {
	case errors.Is(err, types.ErrUserNotFound):
		if _, err := gate.Register(ctx, email, password); err != nil {
			return fmt.Errorf("failed to create admin user %s: %w", email, err)
		}
		fmt.Printf("Admin user created: %s\n", email)
	case err != nil:
		return fmt.Errorf("failed to fetch admin user %s: %w", email, err)
	default:
		if err := gate.ChangePassword(ctx, existing.ID, password); err != nil {
			return fmt.Errorf("failed to reset password for %s: %w", email, err)
		}
		fmt.Printf("Admin password reset: %s\n", email)
	}

	if _, err := gate.Authenticate(ctx, email, password); err != nil {
		return fmt.Errorf("password verification failed for %s: %w", email, err)
	}

	fmt.Println("Password verification succeeded")
	return nil
}
