package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// ParseArrayField decodes an array column leniently. Rows written by other
// tools may hold a plain string instead of a JSON array:
//
//   - a sequence is returned as-is
//   - a string holding a JSON array is decoded
//   - any other string is wrapped in a one-element slice ("" yields none)
//   - nil and unknown types yield an empty slice
func ParseArrayField(field any) []string {
	switch v := field.(type) {
	case nil:
		return []string{}
	case []string:
		return v
	case []any:
		return stringifyAll(v)
	case string:
		return parseArrayString(v)
	case *string:
		if v == nil {
			return []string{}
		}
		return parseArrayString(*v)
	case []byte:
		return parseArrayString(string(v))
	case json.RawMessage:
		return parseRawArray(v)
	case sql.NullString:
		if !v.Valid {
			return []string{}
		}
		return parseArrayString(v.String)
	}

	return []string{}
}

func parseArrayString(field string) []string {
	var parsed any
	if err := json.Unmarshal([]byte(field), &parsed); err != nil {
		if field == "" {
			return []string{}
		}
		return []string{field}
	}

	if arr, ok := parsed.([]any); ok {
		return stringifyAll(arr)
	}

	return []string{field}
}

// parseRawArray handles values taken straight from a JSON document, where a
// JSON string is itself a candidate for array decoding.
func parseRawArray(raw json.RawMessage) []string {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return []string{}
	}
	return ParseArrayField(parsed)
}

func stringifyAll(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
			continue
		}
		out = append(out, fmt.Sprint(v))
	}
	return out
}

// encodeArray is the inverse used on write. Nil slices store as "[]".
func encodeArray(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}

	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("encode array field: %w", err)
	}

	return string(data), nil
}
