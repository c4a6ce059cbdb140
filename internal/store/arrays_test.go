package store

import (
	"database/sql"
	"encoding/json"
	"testing"

	"connectplus/internal/utils"

	"github.com/stretchr/testify/assert"
)

func TestParseArrayField(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{"string slice unchanged", []string{"b", "a"}, []string{"b", "a"}},
		{"any slice", []any{"x", "y"}, []string{"x", "y"}},
		{"json array string", `["A","B"]`, []string{"A", "B"}},
		{"empty json array", `[]`, []string{}},
		{"plain string", "solo", []string{"solo"}},
		{"json non-array", `"quoted"`, []string{`"quoted"`}},
		{"json number", "42", []string{"42"}},
		{"json null string", "null", []string{"null"}},
		{"empty string", "", []string{}},
		{"nil", nil, []string{}},
		{"nil string pointer", (*string)(nil), []string{}},
		{"string pointer", utils.StringPtr(`["p"]`), []string{"p"}},
		{"bytes", []byte(`["b1","b2"]`), []string{"b1", "b2"}},
		{"null sql string", sql.NullString{}, []string{}},
		{"valid sql string", sql.NullString{String: "x", Valid: true}, []string{"x"}},
		{"raw json array", json.RawMessage(`["r"]`), []string{"r"}},
		{"raw json string holding array", json.RawMessage(`"[\"nested\"]"`), []string{"nested"}},
		{"raw json plain string", json.RawMessage(`"solo"`), []string{"solo"}},
		{"raw json null", json.RawMessage(`null`), []string{}},
		{"unsupported type", 12, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseArrayField(tt.input))
		})
	}
}

func TestParseArrayFieldKeepsIdentity(t *testing.T) {
	in := []string{"one", "two"}
	out := ParseArrayField(in)
	assert.Same(t, &in[0], &out[0])
}

func TestEncodeArray(t *testing.T) {
	got, err := encodeArray(nil)
	assert.NoError(t, err)
	assert.Equal(t, "[]", got)

	got, err = encodeArray([]string{"A", "B"})
	assert.NoError(t, err)
	assert.Equal(t, `["A","B"]`, got)
	assert.Equal(t, []string{"A", "B"}, ParseArrayField(got))
}
