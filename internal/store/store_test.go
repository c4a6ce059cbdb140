package store

import (
	"context"
	"database/sql"
	"testing"

	"connectplus/internal/db"

	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(context.Background(), db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}
