package mix

// Table is read access to the tabular event source: rows addressable by
// position in source order, exposing per-row scalar columns.
//
// Implemented by store.EventTable (production) and by in-memory fakes
// in tests.
type Table interface {
	// NumRows returns the total number of rows.
	NumRows() int64

	// HasColumn reports whether the schema contains the named column.
	HasColumn(name string) bool

	// Scalar returns the value at (row, column). Reading a column absent
	// from the schema is an error at first use; the mixer does not catch
	// it.
	Scalar(row int64, column string) (float64, error)
}

// RowWriter is the append-only output sink for mixed candidate rows.
// Row order carries no semantic meaning.
type RowWriter interface {
	Append(values []float64) error
}
