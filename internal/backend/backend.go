// Package backend assembles the reference HTTP server from its parts.
package backend

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/household-expenses/internal"
	"github.com/frahmantamala/household-expenses/internal/auth"
	authRepository "github.com/frahmantamala/household-expenses/internal/auth/repository"
	"github.com/frahmantamala/household-expenses/internal/balance"
	balanceRepository "github.com/frahmantamala/household-expenses/internal/balance/repository"
	"github.com/frahmantamala/household-expenses/internal/database"
	"github.com/frahmantamala/household-expenses/internal/expense"
	expenseRepository "github.com/frahmantamala/household-expenses/internal/expense/repository"
	"github.com/frahmantamala/household-expenses/internal/receipt"
	"github.com/frahmantamala/household-expenses/internal/savings"
	savingsRepository "github.com/frahmantamala/household-expenses/internal/savings/repository"
	"github.com/frahmantamala/household-expenses/internal/transport"
	"github.com/frahmantamala/household-expenses/internal/transport/rest"
	"github.com/frahmantamala/household-expenses/internal/user"
	userRepository "github.com/frahmantamala/household-expenses/internal/user/repository"
	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

type Backend struct {
	Router *chi.Mux
	Users  *user.Service
	Auth   *auth.Service
	logger *slog.Logger
}

// New wires repositories, services and handlers over db and mounts them on a router.
func New(cfg *internal.Config, db *gorm.DB, logger *slog.Logger) (*Backend, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sessionsDB := sqlx.NewDb(sqlDB, database.SQLDriverName(cfg.Database.Driver))

	users := userRepository.NewUserRepository(db)
	userService := user.NewService(users, cfg.Security.BCryptCost, logger)

	authService := auth.NewService(
		users,
		authRepository.NewSessionRepository(sessionsDB),
		auth.NewJWTTokenGenerator(cfg.Security.SessionSecret),
		auth.Options{SessionTTL: cfg.Security.SessionTTL, RememberTTL: cfg.Security.RememberTTL},
		logger,
	)

	receipts := receipt.NewStore(cfg.Receipts.Dir)
	base := transport.NewBaseHandler(logger)

	handlers := rest.Handlers{
		Auth:    auth.NewHandler(base, authService, auth.CookieOptions{Secure: cfg.Security.CookieSecure}),
		RBAC:    auth.NewRBACAuthorization(auth.NewPermissionChecker(), logger),
		Expense: expense.NewHandler(base, expense.NewService(expenseRepository.NewExpenseRepository(db), receipts, logger)),
		Balance: balance.NewHandler(base, balance.NewService(balanceRepository.NewBalanceRepository(db), logger)),
		Savings: savings.NewHandler(base, savings.NewService(savingsRepository.NewSavingsRepository(db), logger)),
		User:    user.NewHandler(base, userService),
		Receipt: receipt.NewHandler(base, receipts),
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, handlers, rest.Options{
		DB:             sqlDB,
		DBComponent:    cfg.Database.Driver,
		AllowedOrigins: cfg.Server.Origins(),
		Logger:         logger,
	})

	return &Backend{
		Router: router,
		Users:  userService,
		Auth:   authService,
		logger: logger,
	}, nil
}

// SeedAdmin creates the configured admin account when it does not exist yet.
func (b *Backend) SeedAdmin(seed internal.SeedConfig) error {
	if seed.AdminPassword == "" {
		b.logger.Warn("no admin password configured, skipping seed", "username", seed.AdminUsername)
		return nil
	}
	created, err := b.Users.EnsureAdmin(seed.AdminUsername, seed.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	if created {
		b.logger.Info("admin account created", "username", seed.AdminUsername)
	}
	return nil
}

// PurgeSessions drops expired sessions every interval until ctx is done.
func (b *Backend) PurgeSessions(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := b.Auth.PurgeExpired(ctx)
			if err != nil {
				b.logger.Error("failed to purge sessions", "error", err)
				continue
			}
			if n > 0 {
				b.logger.Info("expired sessions purged", "count", n)
			}
		}
	}
}
