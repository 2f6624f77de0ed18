package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Open opens and verifies a connection pool for the given dialect.
func Open(ctx context.Context, d Dialect, databaseURL string, maxOpen int) (*sql.DB, error) {
	driverName, err := d.driverName()
	if err != nil {
		return nil, fmt.Errorf("openDB: %w", err)
	}

	db, err := sql.Open(driverName, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("openDB: open %s database: %w", d, err)
	}

	if maxOpen < 1 {
		maxOpen = 1
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxOpen)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("openDB: verify %s connection: %w", d, err)
	}

	if d == SQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("openDB: enable sqlite foreign keys: %w", err)
		}
	}

	return db, nil
}

// EnsureSQLiteDir creates the parent directory of a file-backed SQLite URL.
// In-memory URLs are left alone.
func EnsureSQLiteDir(databaseURL string) error {
	path := strings.TrimPrefix(databaseURL, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" || strings.Contains(databaseURL, "mode=memory") {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure sqlite dir: %w", err)
	}
	return nil
}
