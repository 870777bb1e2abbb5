package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/household-expenses/api"
	"github.com/frahmantamala/household-expenses/internal/auth"
	"github.com/frahmantamala/household-expenses/internal/balance"
	coreUser "github.com/frahmantamala/household-expenses/internal/core/user"
	"github.com/frahmantamala/household-expenses/internal/expense"
	"github.com/frahmantamala/household-expenses/internal/receipt"
	"github.com/frahmantamala/household-expenses/internal/savings"
	"github.com/frahmantamala/household-expenses/internal/transport/middleware"
	"github.com/frahmantamala/household-expenses/internal/transport/swagger"
	"github.com/frahmantamala/household-expenses/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth    *auth.Handler
	RBAC    *auth.RBACAuthorization
	Expense *expense.Handler
	Balance *balance.Handler
	Savings *savings.Handler
	User    *user.Handler
	Receipt *receipt.Handler
}

type Options struct {
	DB             *sql.DB
	DBComponent    string
	AllowedOrigins []string
	Logger         *slog.Logger
}

func RegisterAllRoutes(router *chi.Mux, h Handlers, opts Options) {
	healthHandler := NewHealthHandler(opts.DB, opts.DBComponent)
	rbac := h.RBAC

	router.Use(middleware.ContextLogger(opts.Logger))
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RecoveryMiddleware(opts.Logger))
	router.Use(middleware.LoggingMiddleware)

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(api.Document)
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Get("/me", h.Auth.Me)
			sr.Post("/login", h.Auth.Login)
			sr.Post("/logout", h.Auth.Logout)
			sr.Post("/register", h.Auth.Register)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.RequireSession)
			pr.Use(middleware.UserContext)

			pr.Get("/expenses", h.Expense.ListExpenses)
			pr.Get("/balances", h.Balance.GetBalance)
			pr.Get("/receipts/*", h.Receipt.GetReceipt)

			pr.Group(func(wr chi.Router) {
				wr.Use(rbac.Middleware(coreUser.PermissionWriteExpenses))
				wr.Post("/expenses", h.Expense.CreateExpense)
				wr.Delete("/expenses/{id}", h.Expense.DeleteExpense)
				wr.Post("/expense-items", h.Expense.CreateItem)
				wr.Delete("/expense-items/{id}", h.Expense.DeleteItem)
			})

			pr.With(rbac.Middleware(coreUser.PermissionEditBalance)).Post("/balances", h.Balance.SetBalance)

			pr.Route("/savings", func(sr chi.Router) {
				sr.Use(rbac.Middleware(coreUser.PermissionManageSavings))
				sr.Get("/", h.Savings.ListSavings)
				sr.Post("/", h.Savings.CreateSaving)
				sr.Post("/{id}/contribute", h.Savings.Contribute)
				sr.Delete("/{id}", h.Savings.DeleteSaving)
			})

			pr.Route("/admin", func(ar chi.Router) {
				ar.Use(rbac.RequireAdmin())
				ar.Post("/users", h.User.CreateUser)
				ar.Post("/users/list", h.User.ListUsers)
			})
		})
	})
}
