package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"

	"d3console/internal/log"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

// dialect describes how one driver is opened and migrated.
type dialect struct {
	driver       string // database/sql driver name
	goose        string
	migrationDir string
}

var dialects = map[string]dialect{
	"sqlite":   {driver: "sqlite", goose: "sqlite3", migrationDir: "migrations/sqlite"},
	"postgres": {driver: "pgx", goose: "postgres", migrationDir: "migrations/postgres"},
}

// runMigrations applies every pending migration for d.
func runMigrations(ctx context.Context, db *sql.DB, d dialect) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(d.goose); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, d.migrationDir); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	log.Debug("Journal schema ready", "dialect", d.goose, "version", version)
	return nil
}
