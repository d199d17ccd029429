// Package data wraps CWMS Data API responses.
//
// Every read wrapper returns a [Data] envelope pairing the raw decoded JSON
// document with a tabular view derived from it. The table is built on first
// access and memoized; rebuilding it from the same document always yields an
// identical table.
package data

import (
	"sync"
)

// Data pairs a decoded CDA response with its tabular view. A Data value is
// immutable after construction and owned solely by the caller.
type Data struct {
	// JSON is the decoded response document.
	JSON map[string]any

	// Selector is the dot-separated key path locating the records the
	// table is built from. Empty means the whole document.
	Selector string

	once  sync.Once
	table *Table
	err   error
}

// New wraps a decoded response document. The selector picks the array (or
// object) that becomes the table; pass "" to tabulate the document itself.
func New(doc map[string]any, selector string) *Data {
	return &Data{JSON: doc, Selector: selector}
}

// Table returns the tabular view of the selected data. The conversion is
// pure: identical JSON input always yields an identical table.
func (d *Data) Table() (*Table, error) {
	d.once.Do(func() {
		d.table, d.err = Materialize(d.JSON, d.Selector)
	})
	return d.table, d.err
}
