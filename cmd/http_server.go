package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/household-expenses/api"
	"github.com/frahmantamala/household-expenses/internal/backend"
	"github.com/frahmantamala/household-expenses/internal/database"
	"github.com/spf13/cobra"
)

const sessionPurgeInterval = 10 * time.Minute

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the reference backend serving the household API`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startHTTPServer()
	},
}

func startHTTPServer() error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ValidateServer(); err != nil {
		return err
	}
	log := setupLogger(cfg, os.Stdout)

	if _, err := api.Load(context.Background()); err != nil {
		return err
	}

	db, err := database.Open(cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error("Database close error", "error", err)
		}
	}()

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
	if err := be.SeedAdmin(cfg.Seed); err != nil {
		return err
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go be.PurgeSessions(ctx, sessionPurgeInterval)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("Starting HTTP server", "address", addr, "driver", cfg.Database.Driver)

	server := &http.Server{
		Addr:              addr,
		Handler:           be.Router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		log.Info("Received signal, shutting down...", "signal", sig)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed to start: %w", err)
		}
	}

	log.Info("Server stopped")
	return nil
}
