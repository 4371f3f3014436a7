package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Store owns the output database for mixed candidates.
type Store struct {
	db *sql.DB
}

// Open creates or opens the output SQLite database at the given path,
// applying pragmas and the runs-table schema. Idempotent.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY during the bulk insert.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the output database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying sql.DB for direct queries. Prefer Store
// methods when available.
func (s *Store) DB() *sql.DB {
	return s.db
}

// RecordRun inserts one row into the runs table: the run token, the
// UTC start time and a snapshot of the configuration that produced the
// output tables.
func (s *Store) RecordRun(ctx context.Context, token, config string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (token, started_at, config) VALUES (?, ?, ?)`,
		token, time.Now().UTC().Format(time.RFC3339), config,
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", token, err)
	}
	return nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	return nil
}
