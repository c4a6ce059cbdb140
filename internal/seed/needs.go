package seed

import (
	"context"
	"errors"
	"fmt"

	"connectplus/internal/store"
	"connectplus/pkg/types"
)

// Needs holds the default needs. Roles entries are ids from Roles.
var Needs = []types.Need{
	{
		ID:          "aQ7wE3rT9yU1iO5pL2kJh",
		Name:        "Teaching Resources",
		Description: "Materials and tools for planning and delivering classes",
		Icon:        "BookOpen",
		Roles:       []string{"hB3xQ9kLmT2vR7nWc4pYs", "Jf8sK2dPq6LxZ1aNe5rUv", "Zr2gM5vH7sLc9dKx4NbTf"},
	},
	{
		ID:          "Mx4cV8bN2mZ6lK0jH5gFd",
		Name:        "Unit Development",
		Description: "Designing units, assessments and learning outcomes",
		Icon:        "FileText",
		Roles:       []string{"hB3xQ9kLmT2vR7nWc4pYs", "tW4mY7cRb9Gh3kVz2QsLd"},
	},
	{
		ID:          "Sd9fG3hJ7kL1qW5eR8tYu",
		Name:        "Student Support",
		Description: "Services and referrals that help students succeed",
		Icon:        "Users",
		Roles:       []string{"hB3xQ9kLmT2vR7nWc4pYs", "Jf8sK2dPq6LxZ1aNe5rUv", "Pn6eX1uA8jFq5tBr0WyCk"},
	},
}

// SeedNeeds syncs the database with Needs. Run it after SeedRoles.
func SeedNeeds(ctx context.Context, repo *store.NeedRepository, prune bool) error {
	fmt.Println("Starting need sync...")

	seedIDs := make(map[string]bool, len(Needs))
	for _, need := range Needs {
		seedIDs[need.ID] = true
	}

	deletedCount := 0
	if prune {
		existing, err := repo.Needs(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch existing needs: %w", err)
		}

		for _, existingNeed := range existing {
			if seedIDs[existingNeed.ID] {
				continue
			}
			fmt.Printf("  Deleting need: %s (id: %s)\n", existingNeed.Name, existingNeed.ID)
			if _, err := repo.DeleteNeed(ctx, existingNeed.ID); err != nil {
				return fmt.Errorf("failed to delete need %s: %w", existingNeed.ID, err)
			}
			deletedCount++
		}
	}

	for _, need := range Needs {
		fmt.Printf("  Upserting need: %s\n", need.Name)

		_, err := repo.Need(ctx, need.ID)
		switch {
		case errors.Is(err, types.ErrNeedNotFound):
			_, err = repo.CreateNeed(ctx, &need)
		case err == nil:
			_, err = repo.UpdateNeed(ctx, need.ID, &types.NeedPatch{
				Name:        &need.Name,
				Description: &need.Description,
				Icon:        &need.Icon,
				Roles:       &need.Roles,
			})
		}
		if err != nil {
			return fmt.Errorf("failed to upsert need %s: %w", need.ID, err)
		}
	}

	fmt.Printf("\nNeed sync complete: %d upserted, %d deleted\n", len(Needs), deletedCount)
	return nil
}
