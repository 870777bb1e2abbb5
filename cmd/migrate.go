package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/frahmantamala/household-expenses/internal/database"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "apply the embedded schema migrations for the configured driver",
	}
	migrateRollback bool
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "to rollback the latest version of sql migration")
}

func runMigration(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	log := setupLogger(cfg, os.Stderr)

	db, err := database.Open(cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to open DB: %w", err)
	}
	defer database.Close(db)

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	if migrateRollback {
		if err := database.Rollback(ctx, sqlDB, cfg.Database.Driver); err != nil {
			return err
		}
		log.Info("rolled back latest migration", "driver", cfg.Database.Driver)
		return nil
	}

	if err := database.Migrate(ctx, sqlDB, cfg.Database.Driver); err != nil {
		return err
	}
	log.Info("migrations applied", "driver", cfg.Database.Driver)
	return nil
}
