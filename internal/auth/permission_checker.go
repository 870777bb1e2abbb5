package auth

import (
	"context"

	coreUser "github.com/frahmantamala/household-expenses/internal/core/user"
)

type PermissionChecker interface {
	HasPermission(ctx context.Context, u *coreUser.User, permission coreUser.Permission) (bool, error)
	HasAnyRole(ctx context.Context, u *coreUser.User, roles ...coreUser.Role) (bool, error)
}

type DefaultPermissionChecker struct{}

func NewPermissionChecker() PermissionChecker {
	return &DefaultPermissionChecker{}
}

func (c *DefaultPermissionChecker) HasPermission(ctx context.Context, u *coreUser.User, permission coreUser.Permission) (bool, error) {
	return u.Can(permission), nil
}

func (c *DefaultPermissionChecker) HasAnyRole(ctx context.Context, u *coreUser.User, roles ...coreUser.Role) (bool, error) {
	if u == nil {
		return false, nil
	}
	for _, r := range roles {
		if u.Role == r {
			return true, nil
		}
	}
	return false, nil
}
