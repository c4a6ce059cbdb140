package seed

import (
	"context"
	"fmt"

	"connectplus/internal/store"
	"connectplus/pkg/types"
)

func SampleResource() *types.Resource {
	return &types.Resource{
		Title:        "Sample Resource",
		Description:  "This is a sample resource to get you started",
		URL:          "https://example.com",
		Icon:         "FileText",
		Roles:        []string{"HE Lecturer"},
		Needs:        []string{"Unit Development"},
		Tags:         []string{"sample"},
		ResourceType: types.ResourceTypeGuide,
		ActionText:   types.DefaultActionText,
	}
}

// EnsureSampleResource inserts SampleResource when the library is empty and
// reports whether it did.
func EnsureSampleResource(ctx context.Context, repo *store.ResourceRepository) (bool, error) {
	count, err := repo.CountResources(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	if _, err := repo.CreateResource(ctx, SampleResource()); err != nil {
		return false, fmt.Errorf("failed to insert sample resource: %w", err)
	}

	return true, nil
}
