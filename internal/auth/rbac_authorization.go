package auth

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/household-expenses/internal"
	coreUser "github.com/frahmantamala/household-expenses/internal/core/user"
	"github.com/frahmantamala/household-expenses/internal/transport"
)

type RBACAuthorization struct {
	*transport.BaseHandler
	checker PermissionChecker
}

func NewRBACAuthorization(checker PermissionChecker, logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{
		BaseHandler: transport.NewBaseHandler(logger),
		checker:     checker,
	}
}

// require answers 401 without a user on the context and 403 when allow rejects it.
func (ra *RBACAuthorization) require(allow func(r *http.Request, u *coreUser.User) (bool, error), what string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := internal.UserFromContext(r.Context())
			if !ok {
				ra.Logger.Warn("authorization check failed: user not found in context")
				ra.WriteAppError(w, internal.ErrUnauthorized)
				return
			}

			hasAccess, err := allow(r, user)
			if err != nil {
				ra.Logger.ErrorContext(r.Context(), "authorization check failed", "error", err, "user_id", user.ID, "required", what)
				ra.WriteError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			if !hasAccess {
				ra.Logger.WarnContext(r.Context(), "access denied",
					"user_id", user.ID,
					"role", user.Role,
					"required", what)
				ra.WriteAppError(w, internal.ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (ra *RBACAuthorization) Middleware(permission coreUser.Permission) func(http.Handler) http.Handler {
	return ra.require(func(r *http.Request, u *coreUser.User) (bool, error) {
		return ra.checker.HasPermission(r.Context(), u, permission)
	}, string(permission))
}

func (ra *RBACAuthorization) RequireRoles(roles ...coreUser.Role) func(http.Handler) http.Handler {
	return ra.require(func(r *http.Request, u *coreUser.User) (bool, error) {
		return ra.checker.HasAnyRole(r.Context(), u, roles...)
	}, "role")
}

func (ra *RBACAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return ra.RequireRoles(coreUser.RoleAdmin)
}
