// Package dbtest opens a migrated in-memory sqlite database for tests.
package dbtest

import (
	"context"

	"github.com/frahmantamala/household-expenses/internal"
	"github.com/frahmantamala/household-expenses/internal/database"
	"gorm.io/gorm"
)

func Open() (*gorm.DB, error) {
	db, err := database.Open(internal.DatabaseConfig{Driver: database.DriverSQLite, Source: ":memory:"}, nil)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(context.Background(), sqlDB, database.DriverSQLite); err != nil {
		_ = database.Close(db)
		return nil, err
	}
	return db, nil
}
