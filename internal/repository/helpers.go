package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// isUniqueConstraintError checks if an error is a unique constraint violation
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "unique") ||
		strings.Contains(errStr, "duplicate") ||
		strings.Contains(errStr, "already exists")
}

// convertRecordID flattens a SurrealDB record ID to its bare key. Records
// are created as type::thing(table, uuid), so DTOs carry the canonical UUID
// with the table prefix stripped.
func convertRecordID(id interface{}) string {
	var full string
	switch v := id.(type) {
	case string:
		full = v
	case models.RecordID:
		full = fmt.Sprintf("%s:%v", v.Table, v.ID)
	case *models.RecordID:
		if v != nil {
			full = fmt.Sprintf("%s:%v", v.Table, v.ID)
		}
	default:
		full = fmt.Sprintf("%v", id)
	}

	if i := strings.IndexByte(full, ':'); i >= 0 {
		full = full[i+1:]
	}
	return strings.Trim(full, "⟨⟩")
}

// unwrapOne navigates the SurrealDB response wrapper down to a single
// record map, or nil when the result set is empty.
func unwrapOne(result interface{}) (map[string]interface{}, error) {
	if result == nil {
		return nil, nil
	}

	if resp, ok := result.(map[string]interface{}); ok {
		if status, ok := resp["status"].(string); ok && status == "OK" {
			if resultData, ok := resp["result"].([]interface{}); ok {
				if len(resultData) == 0 {
					return nil, nil
				}
				result = resultData[0]
			}
		}
	}

	if arr, ok := result.([]interface{}); ok {
		if len(arr) == 0 {
			return nil, nil
		}
		result = arr[0]
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}
	return data, nil
}

// parseRecord maps a single SurrealDB result onto a model type via a JSON
// roundtrip, flattening the record ID first.
func parseRecord[T any](result interface{}) (*T, error) {
	data, err := unwrapOne(result)
	if err != nil || data == nil {
		return nil, err
	}

	if id, ok := data["id"]; ok {
		data["id"] = convertRecordID(id)
	}
	normalizeTimes(data)

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var record T
	if err := json.Unmarshal(jsonBytes, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// parseRecords maps a multi-statement query response onto a model slice.
func parseRecords[T any](results []interface{}) ([]*T, error) {
	records := make([]*T, 0)

	for _, result := range results {
		resp, ok := result.(map[string]interface{})
		if !ok {
			continue
		}
		if status, ok := resp["status"].(string); !ok || status != "OK" {
			continue
		}
		resultData, ok := resp["result"].([]interface{})
		if !ok {
			continue
		}
		for _, item := range resultData {
			record, err := parseRecord[T](item)
			if err != nil {
				return nil, err
			}
			if record != nil {
				records = append(records, record)
			}
		}
	}

	return records, nil
}

// normalizeTimes rewrites driver datetime values as RFC3339 strings so the
// JSON roundtrip lands them in time.Time fields.
func normalizeTimes(data map[string]interface{}) {
	for key, value := range data {
		switch t := value.(type) {
		case time.Time:
			data[key] = t.Format(time.RFC3339Nano)
		case models.CustomDateTime:
			data[key] = t.Time.Format(time.RFC3339Nano)
		case *models.CustomDateTime:
			if t != nil {
				data[key] = t.Time.Format(time.RFC3339Nano)
			}
		case map[string]interface{}:
			normalizeTimes(t)
		}
	}
}

// setClause builds a dynamic SET clause from an updates map; every key maps
// to a query variable of the same name.
func setClause(updates map[string]interface{}) string {
	clause := ""
	for key := range updates {
		if clause != "" {
			clause += ", "
		}
		clause += fmt.Sprintf("%s = $%s", key, key)
	}
	return clause
}
