package user

import (
	"net/http"

	"github.com/frahmantamala/household-expenses/internal/transport"
)

type ServiceAPI interface {
	Create(dto CreateUserDTO) (int64, error)
	List() ([]User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// CreateUser handles POST /admin/users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var dto CreateUserDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteAppError(w, err)
		return
	}

	id, err := h.Service.Create(dto)
	if err != nil {
		h.Logger.Warn("CreateUser: rejected", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, CreatedResponse{Success: true, UserID: id})
}

// ListUsers handles POST /admin/users/list
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.List()
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, UsersResponse{Users: users})
}
