package store

import (
	"context"
	"database/sql"
	"fmt"

	"connectplus/internal/db"
	"connectplus/internal/utils"
	"connectplus/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
)

type resourceRow struct {
	ID           string  `db:"id"`
	Title        string  `db:"title"`
	Description  string  `db:"description"`
	URL          string  `db:"url"`
	Icon         *string `db:"icon"`
	Roles        *string `db:"roles"`
	Needs        *string `db:"needs"`
	Tags         *string `db:"tags"`
	Featured     *int64  `db:"featured"`
	UpdatedAt    string  `db:"updatedAt"`
	ResourceType string  `db:"resourceType"`
	ActionText   *string `db:"actionText"`
}

var resourceColumns = utils.StructTagValues(resourceRow{})

func (row *resourceRow) decode() *types.Resource {
	return &types.Resource{
		ID:           row.ID,
		Title:        row.Title,
		Description:  row.Description,
		URL:          row.URL,
		Icon:         utils.PtrString(row.Icon),
		Roles:        ParseArrayField(row.Roles),
		Needs:        ParseArrayField(row.Needs),
		Tags:         ParseArrayField(row.Tags),
		Featured:     row.Featured != nil && *row.Featured != 0,
		UpdatedAt:    row.UpdatedAt,
		ResourceType: row.ResourceType,
		ActionText:   utils.PtrStringOr(row.ActionText, types.DefaultActionText),
	}
}

func encodeResource(resource *types.Resource) (*resourceRow, error) {
	roles, err := encodeArray(resource.Roles)
	if err != nil {
		return nil, err
	}
	needs, err := encodeArray(resource.Needs)
	if err != nil {
		return nil, err
	}
	tags, err := encodeArray(resource.Tags)
	if err != nil {
		return nil, err
	}

	featured := int64(boolToInt(resource.Featured))

	return &resourceRow{
		ID:           resource.ID,
		Title:        resource.Title,
		Description:  resource.Description,
		URL:          resource.URL,
		Icon:         nullable(resource.Icon),
		Roles:        &roles,
		Needs:        &needs,
		Tags:         &tags,
		Featured:     &featured,
		UpdatedAt:    resource.UpdatedAt,
		ResourceType: resource.ResourceType,
		ActionText:   utils.StringPtr(resource.ActionText),
	}, nil
}

type ResourceRepository struct {
	db *sql.DB
}

func NewResourceRepository(db *sql.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

// Resources returns every resource, most recently updated first.
func (r *ResourceRepository) Resources(ctx context.Context) ([]*types.Resource, error) {
	query, args, err := builder().
		Select(resourceColumns...).
		From(resourceTableName).
		OrderBy("updatedAt DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate resources query: %w", err)
	}

	var rows []*resourceRow
	if err := sqlscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch resources: %w", err)
	}

	resources := make([]*types.Resource, 0, len(rows))
	for _, row := range rows {
		resources = append(resources, row.decode())
	}

	return resources, nil
}

func (r *ResourceRepository) Resource(ctx context.Context, id string) (*types.Resource, error) {
	row, err := r.resourceRow(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return row.decode(), nil
}

func (r *ResourceRepository) resourceRow(ctx context.Context, q db.Querier, id string) (*resourceRow, error) {
	query, args, err := builder().
		Select(resourceColumns...).
		From(resourceTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate resource query: %w", err)
	}

	var row resourceRow
	err = sqlscan.Get(ctx, q, &row, query, args...)
	if err != nil {
		if sqlscan.NotFound(err) {
			return nil, types.ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to fetch resource: %w", err)
	}

	return &row, nil
}

// CreateResource inserts resource, generating an id when none is set, and
// returns the stored record.
func (r *ResourceRepository) CreateResource(ctx context.Context, resource *types.Resource) (*types.Resource, error) {
	created := *resource
	if created.ID == "" {
		created.ID = utils.NanoID()
	}
	if created.UpdatedAt == "" {
		created.UpdatedAt = utils.Now()
	}
	if created.ActionText == "" {
		created.ActionText = types.DefaultActionText
	}

	row, err := encodeResource(&created)
	if err != nil {
		return nil, err
	}

	query, args, err := builder().
		Insert(resourceTableName).
		SetMap(utils.StructToMap(row)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate insert resource query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	return row.decode(), nil
}

// UpdateResource applies the non-nil fields of patch to the stored row.
func (r *ResourceRepository) UpdateResource(ctx context.Context, id string, patch *types.ResourcePatch) (*types.Resource, error) {
	var updated *types.Resource

	err := db.WithTx(ctx, r.db, func(ctx context.Context, tx db.Querier) error {
		row, err := r.resourceRow(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := applyResourcePatch(row, patch); err != nil {
			return err
		}

		query, args, err := builder().
			Update(resourceTableName).
			SetMap(utils.StructToMap(row, "id")).
			Where(sq.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to generate update resource query for resource %s: %w", id, err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to update resource: %w", err)
		}

		updated = row.decode()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func applyResourcePatch(row *resourceRow, patch *types.ResourcePatch) error {
	if patch == nil {
		return nil
	}

	if patch.Title != nil {
		row.Title = *patch.Title
	}
	if patch.Description != nil {
		row.Description = *patch.Description
	}
	if patch.URL != nil {
		row.URL = *patch.URL
	}
	if patch.Icon != nil {
		row.Icon = nullable(*patch.Icon)
	}
	if patch.Roles != nil {
		encoded, err := encodeArray(*patch.Roles)
		if err != nil {
			return err
		}
		row.Roles = &encoded
	}
	if patch.Needs != nil {
		encoded, err := encodeArray(*patch.Needs)
		if err != nil {
			return err
		}
		row.Needs = &encoded
	}
	if patch.Tags != nil {
		encoded, err := encodeArray(*patch.Tags)
		if err != nil {
			return err
		}
		row.Tags = &encoded
	}
	if patch.Featured != nil {
		featured := int64(boolToInt(*patch.Featured))
		row.Featured = &featured
	}
	if patch.UpdatedAt != nil {
		row.UpdatedAt = *patch.UpdatedAt
	}
	if patch.ResourceType != nil {
		row.ResourceType = *patch.ResourceType
	}
	if patch.ActionText != nil {
		row.ActionText = patch.ActionText
	}

	return nil
}

// DeleteResource reports whether a row was removed. A missing id is not an
// error.
func (r *ResourceRepository) DeleteResource(ctx context.Context, id string) (bool, error) {
	query, args, err := builder().
		Delete(resourceTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to generate delete resource query for resource %s: %w", id, err)
	}

	return execAffected(ctx, r.db, query, args, "failed to delete resource")
}

func (r *ResourceRepository) CountResources(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, resourceTableName)
}
