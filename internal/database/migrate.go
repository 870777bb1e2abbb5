package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrations embed.FS

const migrationTable = "schema_migrations"

func migrationDir(driver string) (dir, dialect string) {
	if driver == DriverPostgres {
		return "migrations/postgres", "postgres"
	}
	return "migrations/sqlite", "sqlite3"
}

// Migrate applies every pending migration for driver.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	return run(ctx, db, driver, "up")
}

// Rollback reverts the latest applied migration.
func Rollback(ctx context.Context, db *sql.DB, driver string) error {
	return run(ctx, db, driver, "down")
}

func run(ctx context.Context, db *sql.DB, driver, command string) error {
	dir, dialect := migrationDir(driver)

	goose.SetBaseFS(migrations)
	goose.SetTableName(migrationTable)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose: %w", err)
	}
	if err := goose.RunContext(ctx, command, db, dir); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
