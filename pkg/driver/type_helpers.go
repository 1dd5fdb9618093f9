// Safe coercion helpers for values coming back from the graph store. Neo4j
// returns int64 and dbtype temporal values; the memory driver returns plain
// Go types; fixture data may carry dates as strings. The projection layer
// goes through these helpers so it never cares which driver produced a value.
package driver

import (
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

// TypeConversionError reports a value that could not be coerced to the
// expected type.
type TypeConversionError struct {
	Expected string
	Actual   string
	Field    string
}

func (e *TypeConversionError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("type conversion error for field %q: expected %s, got %s", e.Field, e.Expected, e.Actual)
	}
	return fmt.Sprintf("type conversion error: expected %s, got %s", e.Expected, e.Actual)
}

// AsString coerces a record value to string.
func AsString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// AsInt coerces a record value to int, accepting int, int64, and float64.
func AsInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

// AsFloat coerces a record value to float64, accepting float64, int, int64.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// AsBool coerces a record value to bool.
func AsBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// AsTime coerces a record value to a time.Time, accepting native time.Time,
// Neo4j temporal types, and "2006-01-02" / RFC 3339 strings.
func AsTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case dbtype.Date:
		return t.Time(), true
	case dbtype.LocalDateTime:
		return t.Time(), true
	case string:
		if parsed, err := time.Parse("2006-01-02", t); err == nil {
			return parsed, true
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// AsRecord coerces a record value to a nested Record.
func AsRecord(v any) (Record, bool) {
	switch m := v.(type) {
	case Record:
		return m, true
	case map[string]any:
		return Record(m), true
	}
	return nil, false
}

// MustString coerces to string or returns a TypeConversionError naming the
// field.
func MustString(v any, field string) (string, error) {
	s, ok := AsString(v)
	if !ok {
		return "", &TypeConversionError{Expected: "string", Actual: fmt.Sprintf("%T", v), Field: field}
	}
	return s, nil
}
