package middleware

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/household-expenses/internal"
	"github.com/frahmantamala/household-expenses/pkg/logger"
)

// UserContext tags the request logger with the authenticated user.
func UserContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := internal.UserFromContext(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx := logger.With(r.Context(), "user_id", u.ID, "role", u.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ContextLogger seeds the request context with base so later middleware can add fields to it.
func ContextLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(logger.WithLogger(r.Context(), base)))
		})
	}
}
