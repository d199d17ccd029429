package data

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Table is a row-oriented view of a CDA response. Cell values are one of
// nil, bool, float64, string, time.Time, or the original nested value for
// cells that have no scalar form. A JSON null is always a nil cell, never
// the string "null".
type Table struct {
	Columns []string
	Rows    [][]any
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return len(t.Rows) }

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int { return len(t.Columns) }

// Column returns the index of the named column, or -1.
func (t *Table) Column(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Materialize converts the selected portion of a decoded document into a
// Table.
//
// Three shapes are recognized, matching the layouts the CDA produces:
//
//   - a "values" array paired with a top-level "value-columns" array: the
//     declared column names are used in order, and a date-time column is
//     parsed from epoch milliseconds into UTC time.Time values;
//   - an array of objects: each object becomes a row, nested objects are
//     flattened with dot-joined keys;
//   - a single object: a one-row flattened table.
//
// Missing selector keys are skipped rather than failing, so a selector can
// name a path that only some responses include.
func Materialize(doc map[string]any, selector string) (*Table, error) {
	node := walk(doc, selector)

	if strings.Contains(selector, "rating-points") {
		if m, ok := node.(map[string]any); ok {
			if pts, ok := m["point"].([]any); ok {
				return tableFromObjects(pts)
			}
		}
	}

	parts := strings.Split(selector, ".")
	if parts[len(parts)-1] == "values" {
		if values, ok := node.([]any); ok {
			if cols := columnNames(doc["value-columns"]); cols != nil {
				return tableFromValues(values, cols)
			}
		}
	}

	switch v := node.(type) {
	case []any:
		return tableFromObjects(v)
	case map[string]any:
		return tableFromObjects([]any{v})
	case nil:
		return &Table{}, nil
	default:
		return nil, fmt.Errorf("cannot tabulate %T at selector %q", node, selector)
	}
}

// walk descends the dot-separated selector path, skipping keys the
// document does not contain.
func walk(doc map[string]any, selector string) any {
	var node any = doc
	if selector == "" {
		return node
	}
	for _, key := range strings.Split(selector, ".") {
		m, ok := node.(map[string]any)
		if !ok {
			return node
		}
		if child, present := m[key]; present {
			node = child
		}
	}
	return node
}

// columnNames extracts the declared names from a value-columns array.
func columnNames(meta any) []string {
	cols, ok := meta.([]any)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(cols))
	for _, c := range cols {
		m, ok := c.(map[string]any)
		if !ok {
			return nil
		}
		name, ok := m["name"].(string)
		if !ok {
			return nil
		}
		names = append(names, name)
	}
	return names
}

// tableFromValues builds a table from parallel row arrays and declared
// column names. Row order is preserved exactly.
func tableFromValues(values []any, columns []string) (*Table, error) {
	t := &Table{Columns: columns, Rows: make([][]any, 0, len(values))}
	timeCol := t.Column("date-time")

	for i, rv := range values {
		cells, ok := rv.([]any)
		if !ok {
			return nil, fmt.Errorf("values[%d] is %T, want array", i, rv)
		}
		row := make([]any, len(columns))
		for j := range columns {
			if j >= len(cells) {
				break
			}
			cell := cells[j]
			if j == timeCol {
				ts, err := parseDateTime(cell)
				if err != nil {
					return nil, fmt.Errorf("values[%d]: %w", i, err)
				}
				cell = ts
			}
			row[j] = cell
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// parseDateTime converts a date-time cell. The CDA emits epoch
// milliseconds in v2 timeseries bodies and ISO 8601 strings elsewhere; the
// result is always UTC.
func parseDateTime(cell any) (any, error) {
	switch v := cell.(type) {
	case nil:
		return nil, nil
	case float64:
		return time.UnixMilli(int64(v)).UTC(), nil
	case string:
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, fmt.Errorf("parsing date-time %q: %w", v, err)
		}
		return ts.UTC(), nil
	default:
		return nil, fmt.Errorf("date-time cell is %T, want number or string", cell)
	}
}

// tableFromObjects flattens an array of JSON objects into rows. Column
// order is the first-seen order across rows, with keys within each object
// visited in sorted order so the result is deterministic.
func tableFromObjects(items []any) (*Table, error) {
	t := &Table{}
	index := map[string]int{}

	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record %d is %T, want object", i, item)
		}
		flat := map[string]any{}
		flatten("", obj, flat)

		keys := make([]string, 0, len(flat))
		for k := range flat {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, present := index[k]; !present {
				index[k] = len(t.Columns)
				t.Columns = append(t.Columns, k)
			}
		}

		row := make([]any, len(t.Columns))
		for k, v := range flat {
			row[index[k]] = v
		}
		t.Rows = append(t.Rows, row)
	}

	// Rows seen before a late-appearing column are shorter; pad them so
	// every row has one cell per column.
	for i, row := range t.Rows {
		if len(row) < len(t.Columns) {
			padded := make([]any, len(t.Columns))
			copy(padded, row)
			t.Rows[i] = padded
		}
	}
	return t, nil
}

// flatten joins nested object keys with dots. Arrays and scalars are kept
// as cell values.
func flatten(prefix string, obj map[string]any, out map[string]any) {
	for k, v := range obj {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if child, ok := v.(map[string]any); ok {
			flatten(key, child, out)
			continue
		}
		out[key] = v
	}
}
