package app

import (
	"context"
	"strings"

	errors "github.com/frahmantamala/household-expenses/internal"
	"github.com/frahmantamala/household-expenses/internal/session"
	"github.com/frahmantamala/household-expenses/internal/user"
)

var ErrMissingCredentials = errors.NewValidationError("Username and password are required", errors.ErrCodeMissingFields)

// AdminAddUser provisions an account. Password strength and role values are checked by the server.
func (a *App) AdminAddUser(ctx context.Context, dto user.CreateUserDTO) (int64, error) {
	if err := a.gate.Require(session.CapabilityManageUsers); err != nil {
		return 0, a.fail("AdminAddUser", err)
	}
	if strings.TrimSpace(dto.Username) == "" || strings.TrimSpace(dto.Password) == "" {
		return 0, a.fail("AdminAddUser", ErrMissingCredentials)
	}

	id, err := a.api.CreateUser(ctx, dto)
	if err != nil {
		return 0, a.fail("AdminAddUser", err)
	}
	a.logger.Info("user created", "user_id", id, "username", dto.Username)
	a.view.Notify("User created")
	return id, nil
}

func (a *App) AdminListUsers(ctx context.Context) ([]user.User, error) {
	if err := a.gate.Require(session.CapabilityManageUsers); err != nil {
		return nil, a.fail("AdminListUsers", err)
	}
	users, err := a.api.ListUsers(ctx)
	if err != nil {
		return nil, a.fail("AdminListUsers", err)
	}
	a.view.RenderUsers(users)
	return users, nil
}
