package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID      string  `db:"id"`
	Name    string  `db:"name"`
	Note    *string `db:"note"`
	Skipped string  `db:"-"`
	Plain   string
	private string `db:"private"`
}

func TestStructTagValues(t *testing.T) {
	assert.Equal(t, []string{"id", "name", "note"}, StructTagValues(row{}))
	assert.Equal(t, []string{"id", "name", "note"}, StructTagValues(&row{}))
}

func TestStructToMap(t *testing.T) {
	r := row{ID: "a", Name: "b", Skipped: "x", Plain: "y", private: "z"}

	m := StructToMap(r)
	require.Len(t, m, 3)
	assert.Equal(t, "a", m["id"])
	assert.Equal(t, "b", m["name"])
	assert.Nil(t, m["note"])

	m = StructToMap(&r, "id")
	assert.NotContains(t, m, "id")
	assert.Contains(t, m, "name")
}

func TestStructToMapPanicsOnNonStruct(t *testing.T) {
	assert.Panics(t, func() { StructToMap(42) })
}

func TestErrorWrapOrNil(t *testing.T) {
	assert.NoError(t, ErrorWrapOrNil(nil, "msg"))

	base := errors.New("boom")
	err := ErrorWrapOrNil(base, "failed")
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "failed: boom", err.Error())
	assert.Equal(t, base, ErrorWrapOrNil(base, ""))
}

func TestTimestamp(t *testing.T) {
	assert.Len(t, Now(), len(TimestampLayout))
	assert.Len(t, NanoID(), NanoidSize)
	assert.Len(t, NanoIDSize(8), 8)
}
