package journal

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/photodesk/internal/client/migrations"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// RunMigrations applies the embedded schema migrations. goose's own output
// is silenced; callers log the outcome.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the journal at dsn and brings its schema
// up to date.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	// SQLite serialises writers; a single connection also keeps ":memory:"
	// databases alive across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	return db, nil
}
