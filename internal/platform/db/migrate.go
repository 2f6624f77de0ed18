package db

import (
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// goose keeps its dialect and filesystem in package state.
var migrateMu sync.Mutex

// Migrate applies the embedded migrations for d.
func Migrate(db *sql.DB, d Dialect) error {
	if db == nil {
		return fmt.Errorf("migrate: db is nil")
	}

	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(d.gooseDialect()); err != nil {
		return fmt.Errorf("migrate: set dialect: %w", err)
	}
	if err := goose.Up(db, "migrations/"+string(d)); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
