package user

import (
	"time"

	coreUser "github.com/frahmantamala/household-expenses/internal/core/user"
	userDatamodel "github.com/frahmantamala/household-expenses/internal/core/datamodel/user"
)

type User struct {
	ID           int64         `json:"id"`
	Username     string        `json:"username"`
	PasswordHash string        `json:"-"`
	Role         coreUser.Role `json:"role"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Principal is the identity carried on request contexts.
func (u *User) Principal() *coreUser.User {
	return &coreUser.User{ID: u.ID, Username: u.Username, Role: u.Role, CreatedAt: u.CreatedAt}
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
	}
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         coreUser.Role(u.Role),
		CreatedAt:    u.CreatedAt,
	}
}
