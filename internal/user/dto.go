package user

import (
	"strings"

	errors "github.com/frahmantamala/household-expenses/internal"
	"github.com/frahmantamala/household-expenses/internal/core/common/validation"
	coreUser "github.com/frahmantamala/household-expenses/internal/core/user"
)

const MinPasswordLength = 12

// CreateUserDTO is the body of POST /admin/users.
type CreateUserDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

var (
	ErrMissingCredentials = errors.NewValidationError("Missing username or password", errors.ErrCodeMissingFields)
	ErrInvalidRole        = errors.NewValidationError("Invalid role", errors.ErrCodeInvalidRole)
)

// Normalize trims the credentials and lower-cases the role, defaulting to user.
func (d CreateUserDTO) Normalize() CreateUserDTO {
	d.Username = strings.TrimSpace(d.Username)
	d.Password = strings.TrimSpace(d.Password)
	d.Role = strings.ToLower(strings.TrimSpace(d.Role))
	if d.Role == "" {
		d.Role = string(coreUser.RoleUser)
	}
	return d
}

func (d CreateUserDTO) Validate() error {
	if d.Username == "" || d.Password == "" {
		return ErrMissingCredentials
	}
	if !coreUser.Role(d.Role).Valid() {
		return ErrInvalidRole
	}
	v := validation.NewValidator()
	v.Field("password", d.Password).StrongPassword(MinPasswordLength)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type CreatedResponse struct {
	Success bool  `json:"success"`
	UserID  int64 `json:"user_id"`
}

type UsersResponse struct {
	Users []User `json:"users"`
}
