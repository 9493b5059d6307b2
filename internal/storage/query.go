package storage

import (
	"strings"

	"sem/internal/semerr"
)

// Query runs an arbitrary read-only SQL statement and returns one map per
// row. Only SELECT and WITH statements are accepted; anything else is
// rejected before reaching the store. Store errors pass through verbatim.
func (db *DB) Query(sqlText string) ([]map[string]interface{}, error) {
	trimmed := strings.TrimSpace(sqlText)
	upper := strings.ToUpper(trimmed)
	if !strings.HasPrefix(upper, "SELECT") && !strings.HasPrefix(upper, "WITH") {
		return nil, semerr.Errorf(semerr.InvalidQuery, "only SELECT statements are supported")
	}

	rows, err := db.conn.Query(trimmed)
	if err != nil {
		return nil, semerr.New(semerr.InvalidQuery, err.Error(), err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, semerr.New(semerr.InvalidQuery, err.Error(), err)
	}

	var results []map[string]interface{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, semerr.New(semerr.InvalidQuery, err.Error(), err)
		}

		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			value := values[i]
			if raw, ok := value.([]byte); ok {
				value = string(raw)
			}
			row[col] = value
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, semerr.New(semerr.InvalidQuery, err.Error(), err)
	}
	return results, nil
}
