package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/frahmantamala/household-expenses/internal/backend"
	"github.com/frahmantamala/household-expenses/internal/database"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the configured admin account",
	Long:  `Create the admin account named by seed.admin_username when it does not exist yet. The password comes from seed.admin_password.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.ValidateServer(); err != nil {
			return err
		}
		log := setupLogger(cfg, os.Stderr)

		db, err := database.Open(cfg.Database, log)
		if err != nil {
			return fmt.Errorf("failed to init db: %w", err)
		}
		defer database.Close(db)

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err := database.Migrate(context.Background(), sqlDB, cfg.Database.Driver); err != nil {
			return err
		}

		be, err := backend.New(cfg, db, log)
		if err != nil {
			return err
		}
		if cfg.Seed.AdminPassword == "" {
			return fmt.Errorf("seed.admin_password is not set")
		}
		return be.SeedAdmin(cfg.Seed)
	},
}
