// Package valueobject holds small value types shared by entities and stores.
package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"maps"
)

// ErrScanValueNotBytes indicates the database value is not JSON text.
var ErrScanValueNotBytes = errors.New("valueobject: jsonmap scan value is not []byte")

// JSONMap is a free-form JSON object, stored in jsonb columns. Notification
// metadata and push subscriptions use it.
type JSONMap map[string]any

// Value implements driver.Valuer. A nil map is stored as SQL NULL.
func (j JSONMap) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner.
func (j *JSONMap) Scan(value any) error {
	var raw []byte

	switch v := value.(type) {
	case nil:
		*j = nil
		return nil
	case map[string]any:
		*j = JSONMap(v)
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return ErrScanValueNotBytes
	}

	var m JSONMap
	if err := json.Unmarshal(raw, &m); err != nil {
		return err
	}
	*j = m

	return nil
}

// Clone returns a shallow copy. Nested values are shared.
func (j JSONMap) Clone() JSONMap {
	if j == nil {
		return nil
	}
	return maps.Clone(j)
}

// With returns a copy of j with key set to value.
func (j JSONMap) With(key string, value any) JSONMap {
	out := make(JSONMap, len(j)+1)
	maps.Copy(out, j)
	out[key] = value
	return out
}

// GetString returns the value at key, or "" if missing or not a string.
func (j JSONMap) GetString(key string) string {
	s, _ := j[key].(string)
	return s
}

// GetBool returns the value at key, or false if missing or not a bool.
func (j JSONMap) GetBool(key string) bool {
	b, _ := j[key].(bool)
	return b
}

// GetMap returns the nested object at key, or nil.
func (j JSONMap) GetMap(key string) JSONMap {
	switch v := j[key].(type) {
	case JSONMap:
		return v
	case map[string]any:
		return JSONMap(v)
	default:
		return nil
	}
}
