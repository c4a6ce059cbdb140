package utils

import (
	"fmt"
	"reflect"
	"slices"
)

var ColumnTag = "db"

// StructTagValues returns the column names declared on input's db tags, in
// field order.
func StructTagValues(input any) []string {

	targetValue := structValue(input)
	targetType := targetValue.Type()

	result := make([]string, 0, targetValue.NumField())

	for i := 0; i < targetValue.NumField(); i++ {
		if column, ok := columnName(targetType.Field(i)); ok {
			result = append(result, column)
		}
	}

	return result

}

// StructToMap maps each db-tagged column to its field value, skipping any
// column listed in omit.
func StructToMap(input any, omit ...string) map[string]any {

	result := make(map[string]any)

	itemValue := structValue(input)
	itemType := itemValue.Type()

	for i := 0; i < itemValue.NumField(); i++ {
		column, ok := columnName(itemType.Field(i))
		if !ok || slices.Contains(omit, column) {
			continue
		}

		result[column] = itemValue.Field(i).Interface()
	}

	return result

}

func structValue(input any) reflect.Value {
	v := reflect.ValueOf(input)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		panic("input must be a pointer to a struct or a struct")
	}

	return v
}

func columnName(field reflect.StructField) (string, bool) {
	if field.PkgPath != "" {
		return "", false
	}

	tagValue := field.Tag.Get(ColumnTag)
	if tagValue == "" || tagValue == "-" {
		return "", false
	}

	return tagValue, true
}

func ErrorWrapOrNil(err error, msg string) error {
	if err == nil {
		return nil
	}

	if msg == "" {
		return err
	}

	return fmt.Errorf("%s: %w", msg, err)

}
