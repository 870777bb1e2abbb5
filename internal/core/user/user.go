package user

import (
	"strings"
	"time"
)

type Role string

const (
	RoleViewer Role = "viewer"
	RoleUser   Role = "user"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
)

type Permission string

const (
	PermissionViewExpenses  Permission = "view_expenses"
	PermissionWriteExpenses Permission = "write_expenses"
	PermissionEditBalance   Permission = "edit_balance"
	PermissionManageSavings Permission = "manage_savings"
	PermissionManageUsers   Permission = "manage_users"
)

var rolePermissions = map[Role][]Permission{
	RoleViewer: {PermissionViewExpenses},
	RoleUser:   {PermissionViewExpenses, PermissionWriteExpenses},
	RoleEditor: {PermissionViewExpenses, PermissionWriteExpenses},
	RoleAdmin: {
		PermissionViewExpenses,
		PermissionWriteExpenses,
		PermissionEditBalance,
		PermissionManageSavings,
		PermissionManageUsers,
	},
}

// ParseRole normalizes s and reports whether it names a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	_, ok := rolePermissions[r]
	return r, ok
}

func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

func (r Role) Permissions() []Permission {
	perms := rolePermissions[r]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

func (r Role) Can(p Permission) bool {
	for _, have := range rolePermissions[r] {
		if have == p {
			return true
		}
	}
	return false
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"-"`
}

func (u *User) Can(p Permission) bool {
	if u == nil {
		return false
	}
	return u.Role.Can(p)
}
