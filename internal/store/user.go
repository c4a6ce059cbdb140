package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"connectplus/internal/utils"
	"connectplus/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
)

type userRow struct {
	ID        string  `db:"id"`
	Email     string  `db:"email"`
	Password  string  `db:"password"`
	CreatedAt *string `db:"createdAt"`
	UpdatedAt *string `db:"updatedAt"`
}

var (
	userColumns = utils.StructTagValues(userRow{})
	// Columns safe to hand to clients
	userPublicColumns = utils.FilterNot(userColumns, "password")
)

func (row *userRow) decode() *types.User {
	return &types.User{
		ID:        row.ID,
		Email:     row.Email,
		Password:  row.Password,
		CreatedAt: utils.PtrString(row.CreatedAt),
		UpdatedAt: utils.PtrString(row.UpdatedAt),
	}
}

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Users lists accounts newest first. Password hashes are not selected.
func (r *UserRepository) Users(ctx context.Context) ([]*types.User, error) {
	query, args, err := builder().
		Select("id", "email", "createdAt").
		From(userTableName).
		OrderBy("createdAt DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate users query: %w", err)
	}

	var rows []*userRow
	if err := sqlscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	users := make([]*types.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.decode())
	}

	return users, nil
}

// User fetches an account by id without its password hash.
func (r *UserRepository) User(ctx context.Context, id string) (*types.User, error) {
	return r.userWhere(ctx, userPublicColumns, sq.Eq{"id": id})
}

// UserByEmail matches email exactly and includes the password hash.
func (r *UserRepository) UserByEmail(ctx context.Context, email string) (*types.User, error) {
	return r.userWhere(ctx, userColumns, sq.Eq{"email": email})
}

func (r *UserRepository) userWhere(ctx context.Context, columns []string, where sq.Eq) (*types.User, error) {
	query, args, err := builder().
		Select(columns...).
		From(userTableName).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user query: %w", err)
	}

	var row userRow
	err = sqlscan.Get(ctx, r.db, &row, query, args...)
	if err != nil {
		if sqlscan.NotFound(err) {
			return nil, types.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return row.decode(), nil
}

// CreateUser stores user. Password must already be hashed.
func (r *UserRepository) CreateUser(ctx context.Context, user *types.User) (*types.User, error) {
	_, err := r.UserByEmail(ctx, user.Email)
	if err == nil {
		return nil, types.ErrUserExists
	}
	if !errors.Is(err, types.ErrUserNotFound) {
		return nil, err
	}

	now := utils.Now()
	row := &userRow{
		ID:        user.ID,
		Email:     user.Email,
		Password:  user.Password,
		CreatedAt: utils.StringPtr(now),
		UpdatedAt: utils.StringPtr(now),
	}
	if row.ID == "" {
		row.ID = utils.NanoID()
	}

	query, args, err := builder().
		Insert(userTableName).
		SetMap(utils.StructToMap(row)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate create user query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return nil, types.ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	created := row.decode()
	created.Password = ""
	return created, nil
}

// UpdatePassword overwrites the stored hash and reports whether the user
// existed.
func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) (bool, error) {
	query, args, err := builder().
		Update(userTableName).
		Set("password", passwordHash).
		Set("updatedAt", utils.Now()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to generate update password query for user %s: %w", id, err)
	}

	return execAffected(ctx, r.db, query, args, "failed to update user password")
}

func (r *UserRepository) DeleteUser(ctx context.Context, id string) (bool, error) {
	query, args, err := builder().
		Delete(userTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to generate delete user query for user %s: %w", id, err)
	}

	return execAffected(ctx, r.db, query, args, "failed to delete user")
}

func (r *UserRepository) CountUsers(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, userTableName)
}
