package vectordb

import (
	"encoding/json"
	"fmt"
)

// Row is one record returned by a table query, keyed by column name.
type Row map[string]Value

// RowFromMap converts a driver-level record into a Row.
func RowFromMap(m map[string]any) Row {
	row := make(Row, len(m))
	for k, v := range m {
		row[k] = ValueOf(v)
	}
	return row
}

// Get returns the value stored under name.
func (r Row) Get(name string) (Value, bool) {
	v, ok := r[name]
	return v, ok
}

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Map converts the row into plain Go values.
func (r Row) Map() map[string]any {
	out := make(map[string]any, len(r))
	for k, v := range r {
		out[k] = v.Interface()
	}
	return out
}

// Decode deserializes the whole row into dst, which must be a pointer.
// Column names map to fields the same way encoding/json maps object keys.
func (r Row) Decode(dst any) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode row: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode row into %T: %w", dst, err)
	}
	return nil
}
