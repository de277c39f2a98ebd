// Package memory provides in-memory implementations of the service
// repository interfaces. They back stateful tests and local development
// without a running SurrealDB; a mutex per store serializes all access so
// check-then-write invariants hold the same way the guarded transactions
// do in the SurrealDB repositories.
package memory

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrMissing is returned when an update or delete targets a record that
// does not exist.
var ErrMissing = errors.New("record not found")

// applyUpdates merges an updates map onto a record via a JSON roundtrip,
// matching how the SurrealDB repositories treat update maps.
func applyUpdates[T any](record *T, updates map[string]interface{}) (*T, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	var asMap map[string]interface{}
	if err := json.Unmarshal(data, &asMap); err != nil {
		return nil, err
	}
	for key, value := range updates {
		if t, ok := value.(time.Time); ok {
			value = t.Format(time.RFC3339Nano)
		}
		asMap[key] = value
	}
	merged, err := json.Marshal(asMap)
	if err != nil {
		return nil, err
	}
	var updated T
	if err := json.Unmarshal(merged, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// clone deep-copies a record so callers never share store-owned memory.
func clone[T any](record *T) *T {
	if record == nil {
		return nil
	}
	data, _ := json.Marshal(record)
	var out T
	_ = json.Unmarshal(data, &out)
	return &out
}
