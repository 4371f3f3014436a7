package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// MixWriter appends mixed candidate rows to one output table. All
// appends run inside a single transaction; nothing is visible until
// Commit. A writer abandoned without Commit rolls back on Close.
type MixWriter struct {
	tx    *sql.Tx
	stmt  *sql.Stmt
	table string
	ncols int
	rows  int64
	done  bool
}

// NewMixWriter creates (recreating if present) the named output table
// with one REAL column per entry of columns, and begins the insert
// transaction. Column order is preserved.
func (s *Store) NewMixWriter(ctx context.Context, table string, columns []string) (*MixWriter, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("output table %q needs at least one column", table)
	}

	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %q", table)); err != nil {
		return nil, fmt.Errorf("drop stale table %q: %w", table, err)
	}

	defs := make([]string, len(columns))
	marks := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = fmt.Sprintf("%q REAL", col)
		marks[i] = "?"
	}
	create := fmt.Sprintf("CREATE TABLE %q (%s)", table, strings.Join(defs, ", "))
	if _, err := s.db.ExecContext(ctx, create); err != nil {
		return nil, fmt.Errorf("create table %q: %w", table, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction for %q: %w", table, err)
	}
	insert := fmt.Sprintf("INSERT INTO %q VALUES (%s)", table, strings.Join(marks, ", "))
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("prepare insert for %q: %w", table, err)
	}

	return &MixWriter{tx: tx, stmt: stmt, table: table, ncols: len(columns)}, nil
}

// Append persists one mixed candidate row. The value count must match
// the table schema.
func (w *MixWriter) Append(values []float64) error {
	if len(values) != w.ncols {
		return fmt.Errorf("table %q: got %d values, want %d", w.table, len(values), w.ncols)
	}
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	if _, err := w.stmt.Exec(args...); err != nil {
		return fmt.Errorf("insert into %q: %w", w.table, err)
	}
	w.rows++
	return nil
}

// Rows returns the number of rows appended so far.
func (w *MixWriter) Rows() int64 {
	return w.rows
}

// Commit makes the appended rows durable.
func (w *MixWriter) Commit() error {
	if w.done {
		return nil
	}
	w.done = true
	w.stmt.Close()
	if err := w.tx.Commit(); err != nil {
		return fmt.Errorf("commit %q: %w", w.table, err)
	}
	return nil
}

// Close rolls back the transaction unless Commit already ran.
func (w *MixWriter) Close() error {
	if w.done {
		return nil
	}
	w.done = true
	w.stmt.Close()
	if err := w.tx.Rollback(); err != nil {
		return fmt.Errorf("rollback %q: %w", w.table, err)
	}
	return nil
}
