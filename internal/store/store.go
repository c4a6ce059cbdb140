package store

import (
	"context"
	"errors"
	"fmt"

	"connectplus/internal/db"
	"connectplus/internal/utils"

	sq "github.com/Masterminds/squirrel"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	resourceTableName = "resources"
	roleTableName     = "roles"
	needTableName     = "needs"
	userTableName     = "users"
)

func builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}

	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func execAffected(ctx context.Context, q db.Querier, query string, args []any, msg string) (bool, error) {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return false, utils.ErrorWrapOrNil(err, msg)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected > 0, nil
}

func countRows(ctx context.Context, q db.Querier, table string) (int, error) {
	query, args, err := builder().Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate count query for %s: %w", table, err)
	}

	var count int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}

	return count, nil
}
