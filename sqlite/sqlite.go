// Package sqlite provides the SQLite docset index: symbol storage for the
// crawlers and search for the readers.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/fwojciec/gendocsets"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// Table names of the two index formats.
const (
	zealTable = "things"
	dashTable = "searchIndex"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	tx   *sql.Tx
	path string

	// Format selects the schema. When empty, Open detects the format of an
	// existing index and falls back to FormatZeal for a new one.
	Format gendocsets.IndexFormat

	// ReadOnly opens an existing index without creating or changing
	// anything in it. Set before calling Open.
	ReadOnly bool
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and, unless ReadOnly is set, creates
// the schema if needed.
func (db *DB) Open() error {
	dsn, err := db.dsn()
	if err != nil {
		return err
	}
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.db = conn

	if db.Format == "" {
		format, err := db.detectFormat()
		if err != nil {
			conn.Close()
			return fmt.Errorf("failed to detect index format: %w", err)
		}
		if format == "" {
			if db.ReadOnly {
				conn.Close()
				return gendocsets.Errorf(gendocsets.ENOTFOUND, "%s has no symbol index table", db.path)
			}
			format = gendocsets.FormatZeal
		}
		db.Format = format
	}

	switch db.Format {
	case gendocsets.FormatZeal, gendocsets.FormatDash:
	default:
		conn.Close()
		return gendocsets.Errorf(gendocsets.EINVALID, "unknown index format %q", db.Format)
	}

	if db.ReadOnly {
		return nil
	}

	// A docset ships as a single file, so no WAL sidecars.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = DELETE"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to set journal mode: %w", err)
		}
	}

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection, rolling back an open transaction.
func (db *DB) Close() error {
	if db.tx != nil {
		_ = db.tx.Rollback()
		db.tx = nil
	}
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// Begin starts a transaction that all subsequent statements run in until
// Commit or Rollback. Crawlers wrap a whole build in one transaction.
func (db *DB) Begin(ctx context.Context) error {
	if db.tx != nil {
		return gendocsets.Errorf(gendocsets.ECONFLICT, "transaction already in progress")
	}
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	db.tx = tx
	return nil
}

// Commit commits the transaction started by Begin.
func (db *DB) Commit() error {
	if db.tx == nil {
		return gendocsets.Errorf(gendocsets.EINVALID, "no transaction in progress")
	}
	err := db.tx.Commit()
	db.tx = nil
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback discards the transaction started by Begin. It is a no-op when no
// transaction is in progress.
func (db *DB) Rollback() error {
	if db.tx == nil {
		return nil
	}
	err := db.tx.Rollback()
	db.tx = nil
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to roll back transaction: %w", err)
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	if db.tx != nil {
		return db.tx.QueryRowContext(ctx, query, args...)
	}
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if db.tx != nil {
		return db.tx.QueryContext(ctx, query, args...)
	}
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if db.tx != nil {
		return db.tx.ExecContext(ctx, query, args...)
	}
	return db.db.ExecContext(ctx, query, args...)
}

// Stats returns database statistics.
func (db *DB) Stats() sql.DBStats {
	return db.db.Stats()
}

// dsn returns the data source name of the database. Read-only databases
// are opened through a "file:" URI with mode=ro.
func (db *DB) dsn() (string, error) {
	if !db.ReadOnly {
		return db.path, nil
	}
	if db.path == ":memory:" {
		return "", gendocsets.Errorf(gendocsets.EINVALID, "an in-memory database cannot be opened read-only")
	}
	abs, err := filepath.Abs(db.path)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: "mode=ro"}
	return u.String(), nil
}

// detectFormat inspects sqlite_master for a known symbol table. It returns
// an empty format when there is none.
func (db *DB) detectFormat() (gendocsets.IndexFormat, error) {
	rows, err := db.db.Query(
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name IN (?, ?)",
		zealTable, dashTable)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	var format gendocsets.IndexFormat
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return "", err
		}
		switch {
		case name == dashTable:
			format = gendocsets.FormatDash
		case format == "":
			format = gendocsets.FormatZeal
		}
	}
	return format, rows.Err()
}

// table returns the symbol table of the configured format.
func (db *DB) table() string {
	if db.Format == gendocsets.FormatDash {
		return dashTable
	}
	return zealTable
}

// createSchema creates the symbol table of the configured format if it
// doesn't exist.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS things (
			id INTEGER PRIMARY KEY,
			type TEXT NOT NULL,
			name TEXT NOT NULL,
			path TEXT NOT NULL,
			parent INTEGER REFERENCES things(id)
		);

		CREATE UNIQUE INDEX IF NOT EXISTS things_symbol ON things(type, name, path, coalesce(parent, 0));
		CREATE INDEX IF NOT EXISTS things_parent ON things(parent);
	`
	if db.Format == gendocsets.FormatDash {
		schema = `
			CREATE TABLE IF NOT EXISTS searchIndex (
				id INTEGER PRIMARY KEY,
				name TEXT NOT NULL,
				type TEXT NOT NULL,
				path TEXT NOT NULL
			);

			CREATE UNIQUE INDEX IF NOT EXISTS anchor ON searchIndex(name, type, path);
		`
	}

	_, err := db.db.Exec(schema)
	return err
}
