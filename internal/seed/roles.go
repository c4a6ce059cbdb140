package seed

import (
	"context"
	"errors"
	"fmt"

	"connectplus/internal/store"
	"connectplus/pkg/types"
)

// Roles is the source of truth for the default educator roles. Ids are
// fixed so needs can reference them across environments.
//
// To generate new IDs: `go run ./cmd/connectplus nanoid`
var Roles = []types.Role{
	{
		ID:          "hB3xQ9kLmT2vR7nWc4pYs",
		Name:        "HE Lecturer",
		Description: "Teaching in higher education institutions",
		Icon:        "BookOpen",
	},
	{
		ID:          "Jf8sK2dPq6LxZ1aNe5rUv",
		Name:        "VET/TAFE Lecturer",
		Description: "Teaching in vocational education and training",
		Icon:        "School",
	},
	{
		ID:          "tW4mY7cRb9Gh3kVz2QsLd",
		Name:        "Unit Coordinator",
		Description: "Coordinating and managing units of study",
		Icon:        "Briefcase",
	},
	{
		ID:          "Pn6eX1uA8jFq5tBr0WyCk",
		Name:        "Professional Staff",
		Description: "Supporting teaching and learning activities",
		Icon:        "Users",
	},
	{
		ID:          "Zr2gM5vH7sLc9dKx4NbTf",
		Name:        "New to Teaching",
		Description: "Recently started teaching roles",
		Icon:        "GraduationCap",
	},
}

// SeedRoles syncs the database with Roles:
// - Inserts roles that don't exist
// - Updates seeded roles that have changed
// - With prune, deletes roles from the DB that aren't in the list
func SeedRoles(ctx context.Context, repo *store.RoleRepository, prune bool) error {
	fmt.Println("Starting role sync...")
	fmt.Printf("  Seed file contains %d roles\n", len(Roles))

	seedIDs := make(map[string]bool, len(Roles))
	for _, role := range Roles {
		seedIDs[role.ID] = true
	}

	deletedCount := 0
	if prune {
		existing, err := repo.Roles(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch existing roles: %w", err)
		}

		for _, existingRole := range existing {
			if seedIDs[existingRole.ID] {
				continue
			}
			fmt.Printf("  Deleting role: %s (id: %s)\n", existingRole.Name, existingRole.ID)
			if _, err := repo.DeleteRole(ctx, existingRole.ID); err != nil {
				return fmt.Errorf("failed to delete role %s: %w", existingRole.ID, err)
			}
			deletedCount++
		}
	}

	upsertedCount := 0
	for _, role := range Roles {
		fmt.Printf("  Upserting role: %s\n", role.Name)
		if err := upsertRole(ctx, repo, role); err != nil {
			return fmt.Errorf("failed to upsert role %s: %w", role.ID, err)
		}
		upsertedCount++
	}

	fmt.Printf("\nRole sync complete: %d upserted, %d deleted\n", upsertedCount, deletedCount)
	return nil
}

func upsertRole(ctx context.Context, repo *store.RoleRepository, role types.Role) error {
	_, err := repo.Role(ctx, role.ID)
	if errors.Is(err, types.ErrRoleNotFound) {
		_, err = repo.CreateRole(ctx, &role)
		return err
	}
	if err != nil {
		return err
	}

	_, err = repo.UpdateRole(ctx, role.ID, &types.RolePatch{
		Name:        &role.Name,
		Description: &role.Description,
		Icon:        &role.Icon,
	})
	return err
}
