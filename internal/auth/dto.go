package auth

import (
	"strings"

	coreUser "github.com/frahmantamala/household-expenses/internal/core/user"
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

func (d LoginDTO) Normalize() LoginDTO {
	d.Username = strings.TrimSpace(d.Username)
	d.Password = strings.TrimSpace(d.Password)
	return d
}

type MeResponse struct {
	Authenticated bool           `json:"authenticated"`
	User          *coreUser.User `json:"user,omitempty"`
}
