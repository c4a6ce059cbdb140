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

type roleRow struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
	Icon        *string `db:"icon"`
	CreatedAt   *string `db:"createdAt"`
	UpdatedAt   *string `db:"updatedAt"`
}

var roleColumns = utils.StructTagValues(roleRow{})

func (row *roleRow) decode() *types.Role {
	return &types.Role{
		ID:          row.ID,
		Name:        row.Name,
		Description: utils.PtrString(row.Description),
		Icon:        utils.PtrString(row.Icon),
		CreatedAt:   utils.PtrString(row.CreatedAt),
		UpdatedAt:   utils.PtrString(row.UpdatedAt),
	}
}

type RoleRepository struct {
	db *sql.DB
}

func NewRoleRepository(db *sql.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// Roles returns every role ordered by name.
func (r *RoleRepository) Roles(ctx context.Context) ([]*types.Role, error) {
	query, args, err := builder().
		Select(roleColumns...).
		From(roleTableName).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate roles query: %w", err)
	}

	var rows []*roleRow
	if err := sqlscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch roles: %w", err)
	}

	roles := make([]*types.Role, 0, len(rows))
	for _, row := range rows {
		roles = append(roles, row.decode())
	}

	return roles, nil
}

func (r *RoleRepository) Role(ctx context.Context, id string) (*types.Role, error) {
	row, err := r.roleRow(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return row.decode(), nil
}

func (r *RoleRepository) roleRow(ctx context.Context, q db.Querier, id string) (*roleRow, error) {
	query, args, err := builder().
		Select(roleColumns...).
		From(roleTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate role query: %w", err)
	}

	var row roleRow
	err = sqlscan.Get(ctx, q, &row, query, args...)
	if err != nil {
		if sqlscan.NotFound(err) {
			return nil, types.ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to fetch role: %w", err)
	}

	return &row, nil
}

func (r *RoleRepository) CreateRole(ctx context.Context, role *types.Role) (*types.Role, error) {
	now := utils.Now()

	row := &roleRow{
		ID:          role.ID,
		Name:        role.Name,
		Description: utils.StringPtr(role.Description),
		Icon:        nullable(role.Icon),
		CreatedAt:   utils.StringPtr(utils.PtrStringOr(&role.CreatedAt, now)),
		UpdatedAt:   utils.StringPtr(utils.PtrStringOr(&role.UpdatedAt, now)),
	}
	if row.ID == "" {
		row.ID = utils.NanoID()
	}

	query, args, err := builder().
		Insert(roleTableName).
		SetMap(utils.StructToMap(row)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate insert role query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}

	return row.decode(), nil
}

func (r *RoleRepository) UpdateRole(ctx context.Context, id string, patch *types.RolePatch) (*types.Role, error) {
	var updated *types.Role

	err := db.WithTx(ctx, r.db, func(ctx context.Context, tx db.Querier) error {
		row, err := r.roleRow(ctx, tx, id)
		if err != nil {
			return err
		}

		if patch != nil {
			if patch.Name != nil {
				row.Name = *patch.Name
			}
			if patch.Description != nil {
				row.Description = patch.Description
			}
			if patch.Icon != nil {
				row.Icon = nullable(*patch.Icon)
			}
			if patch.UpdatedAt != nil {
				row.UpdatedAt = patch.UpdatedAt
			}
		}

		query, args, err := builder().
			Update(roleTableName).
			SetMap(utils.StructToMap(row, "id", "createdAt")).
			Where(sq.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to generate update role query for role %s: %w", id, err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to update role: %w", err)
		}

		updated = row.decode()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *RoleRepository) DeleteRole(ctx context.Context, id string) (bool, error) {
	query, args, err := builder().
		Delete(roleTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to generate delete role query for role %s: %w", id, err)
	}

	return execAffected(ctx, r.db, query, args, "failed to delete role")
}

func (r *RoleRepository) CountRoles(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, roleTableName)
}
