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

type needRow struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
	Icon        string  `db:"icon"`
	Roles       *string `db:"roles"` // JSON array of role ids
	CreatedAt   *string `db:"createdAt"`
	UpdatedAt   *string `db:"updatedAt"`
}

var needColumns = utils.StructTagValues(needRow{})

func (row *needRow) decode() *types.Need {
	return &types.Need{
		ID:          row.ID,
		Name:        row.Name,
		Description: utils.PtrString(row.Description),
		Icon:        row.Icon,
		Roles:       ParseArrayField(row.Roles),
		CreatedAt:   utils.PtrString(row.CreatedAt),
		UpdatedAt:   utils.PtrString(row.UpdatedAt),
	}
}

type NeedRepository struct {
	db *sql.DB
}

func NewNeedRepository(db *sql.DB) *NeedRepository {
	return &NeedRepository{db: db}
}

// Needs returns every need ordered by name.
func (r *NeedRepository) Needs(ctx context.Context) ([]*types.Need, error) {
	query, args, err := builder().
		Select(needColumns...).
		From(needTableName).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate needs query: %w", err)
	}

	var rows []*needRow
	if err := sqlscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch needs: %w", err)
	}

	needs := make([]*types.Need, 0, len(rows))
	for _, row := range rows {
		needs = append(needs, row.decode())
	}

	return needs, nil
}

func (r *NeedRepository) Need(ctx context.Context, id string) (*types.Need, error) {
	row, err := r.needRow(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return row.decode(), nil
}

func (r *NeedRepository) needRow(ctx context.Context, q db.Querier, id string) (*needRow, error) {
	query, args, err := builder().
		Select(needColumns...).
		From(needTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate need query: %w", err)
	}

	var row needRow
	err = sqlscan.Get(ctx, q, &row, query, args...)
	if err != nil {
		if sqlscan.NotFound(err) {
			return nil, types.ErrNeedNotFound
		}
		return nil, fmt.Errorf("failed to fetch need: %w", err)
	}

	return &row, nil
}

func (r *NeedRepository) CreateNeed(ctx context.Context, need *types.Need) (*types.Need, error) {
	now := utils.Now()

	roles, err := encodeArray(need.Roles)
	if err != nil {
		return nil, err
	}

	row := &needRow{
		ID:          need.ID,
		Name:        need.Name,
		Description: utils.StringPtr(need.Description),
		Icon:        need.Icon,
		Roles:       &roles,
		CreatedAt:   utils.StringPtr(utils.PtrStringOr(&need.CreatedAt, now)),
		UpdatedAt:   utils.StringPtr(utils.PtrStringOr(&need.UpdatedAt, now)),
	}
	if row.ID == "" {
		row.ID = utils.NanoID()
	}

	query, args, err := builder().
		Insert(needTableName).
		SetMap(utils.StructToMap(row)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate insert need query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to create need: %w", err)
	}

	return row.decode(), nil
}

func (r *NeedRepository) UpdateNeed(ctx context.Context, id string, patch *types.NeedPatch) (*types.Need, error) {
	var updated *types.Need

	err := db.WithTx(ctx, r.db, func(ctx context.Context, tx db.Querier) error {
		row, err := r.needRow(ctx, tx, id)
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
				row.Icon = *patch.Icon
			}
			if patch.Roles != nil {
				encoded, err := encodeArray(*patch.Roles)
				if err != nil {
					return err
				}
				row.Roles = &encoded
			}
			if patch.UpdatedAt != nil {
				row.UpdatedAt = patch.UpdatedAt
			}
		}

		query, args, err := builder().
			Update(needTableName).
			SetMap(utils.StructToMap(row, "id", "createdAt")).
			Where(sq.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to generate update need query for need %s: %w", id, err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to update need: %w", err)
		}

		updated = row.decode()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *NeedRepository) DeleteNeed(ctx context.Context, id string) (bool, error) {
	query, args, err := builder().
		Delete(needTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to generate delete need query for need %s: %w", id, err)
	}

	return execAffected(ctx, r.db, query, args, "failed to delete need")
}

func (r *NeedRepository) CountNeeds(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, needTableName)
}
