package store

import (
	"database/sql"
	"fmt"
)

// MissingColumnError reports a read of a column absent from the input
// schema. It surfaces at the first actual read of the column, per the
// schema-warning contract; nothing in the core catches it.
type MissingColumnError struct {
	Table  string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("table %q has no column %q", e.Table, e.Column)
}

// EventTable is read access to one source event table. Rows are
// addressed by 0-based position in rowid order. Each referenced column
// is loaded once, whole, and cached in memory, so Scalar is O(1) after
// the column's first read.
//
// Not safe for concurrent use; the scan reads sequentially.
type EventTable struct {
	db    *sql.DB
	name  string
	nrows int64
	cols  map[string]struct{}
	cache map[string][]float64
}

// OpenTable opens the database at path read-only and binds to the named
// table, introspecting its schema and row count.
func OpenTable(path, table string) (*EventTable, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open input database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to input database: %w", err)
	}

	t := &EventTable{
		db:    db,
		name:  table,
		cols:  make(map[string]struct{}),
		cache: make(map[string][]float64),
	}

	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%q)", table))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("introspect table %q: %w", table, err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			cid       int
			name, typ string
			notnull   int
			dflt      sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &typ, &notnull, &dflt, &pk); err != nil {
			db.Close()
			return nil, fmt.Errorf("scan table_info for %q: %w", table, err)
		}
		t.cols[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		db.Close()
		return nil, fmt.Errorf("introspect table %q: %w", table, err)
	}
	if len(t.cols) == 0 {
		db.Close()
		return nil, fmt.Errorf("table %q not found in %s", table, path)
	}

	if err := db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %q", table)).Scan(&t.nrows); err != nil {
		db.Close()
		return nil, fmt.Errorf("count rows of %q: %w", table, err)
	}

	return t, nil
}

// Close closes the input database.
func (t *EventTable) Close() error {
	return t.db.Close()
}

// NumRows returns the table's row count.
func (t *EventTable) NumRows() int64 {
	return t.nrows
}

// HasColumn reports whether the schema contains the named column.
func (t *EventTable) HasColumn(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// Scalar returns the value at (row, column). The first read of a
// column loads it whole in rowid order.
func (t *EventTable) Scalar(row int64, column string) (float64, error) {
	if row < 0 || row >= t.nrows {
		return 0, fmt.Errorf("row %d out of range [0, %d)", row, t.nrows)
	}
	vals, ok := t.cache[column]
	if !ok {
		var err error
		vals, err = t.loadColumn(column)
		if err != nil {
			return 0, err
		}
		t.cache[column] = vals
	}
	return vals[row], nil
}

func (t *EventTable) loadColumn(column string) ([]float64, error) {
	if !t.HasColumn(column) {
		return nil, &MissingColumnError{Table: t.name, Column: column}
	}
	rows, err := t.db.Query(fmt.Sprintf("SELECT %q FROM %q ORDER BY rowid", column, t.name))
	if err != nil {
		return nil, fmt.Errorf("load column %q: %w", column, err)
	}
	defer rows.Close()

	vals := make([]float64, 0, t.nrows)
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan column %q: %w", column, err)
		}
		vals = append(vals, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load column %q: %w", column, err)
	}
	if int64(len(vals)) != t.nrows {
		return nil, fmt.Errorf("column %q: got %d values, want %d", column, len(vals), t.nrows)
	}
	return vals, nil
}
