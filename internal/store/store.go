package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a lookup by id matches no row.
var ErrNotFound = errors.New("not found")

// Store owns the SQLite connection and hands out repositories.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
	now func() time.Time
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Pragmas are per connection; a single connection keeps them in force.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	s := &Store{
		db:  db,
		drv: entsql.OpenDB(dialect.SQLite, db),
		now: time.Now,
	}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// Photos returns the photo catalog backed by this store.
func (s *Store) Photos() PhotoRepo {
	return &photoRepo{drv: s.drv}
}

// Results returns the result log backed by this store.
func (s *Store) Results() ResultRepo {
	return &resultRepo{drv: s.drv, now: s.now}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS photos (
		id         TEXT PRIMARY KEY,
		category   TEXT NOT NULL,
		enabled    INTEGER NOT NULL DEFAULT 1,
		asset_id   TEXT NOT NULL DEFAULT '',
		file_path  TEXT NOT NULL DEFAULT '',
		crop_url   TEXT NOT NULL DEFAULT '',
		sort_order INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS photos_category_sort ON photos (category, sort_order)`,
	`CREATE TABLE IF NOT EXISTS quiz_results (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL UNIQUE,
		result     TEXT NOT NULL,
		reason     TEXT NOT NULL,
		rounds     INTEGER NOT NULL,
		margin     INTEGER NOT NULL,
		q1         TEXT NOT NULL,
		q2         TEXT NOT NULL,
		scores     TEXT NOT NULL,
		history    TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`,
}

func (s *Store) migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if err := s.drv.Exec(ctx, stmt, []any{}, nil); err != nil {
			return err
		}
	}
	return nil
}

// applyPragmas configures SQLite for single-user use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. STYLEMATCH_DB environment variable
// 2. $XDG_DATA_HOME/stylematch/stylematch.db
// 3. ~/.local/share/stylematch/stylematch.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("STYLEMATCH_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "stylematch", "stylematch.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

// query runs a built statement and hands each row to scan.
func query(ctx context.Context, eq dialect.ExecQuerier, q string, args []any, scan func(*entsql.Rows) error) error {
	rows := &entsql.Rows{}
	if err := eq.Query(ctx, q, args, rows); err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}
