package savings

import (
	"net/http"

	"github.com/frahmantamala/household-expenses/internal/transport"
)

type ServiceAPI interface {
	List() ([]Goal, error)
	Create(dto CreateGoalDTO) (*Goal, error)
	Contribute(id int64, dto ContributeDTO) (*Goal, error)
	Delete(id int64) error
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

func (h *Handler) ListSavings(w http.ResponseWriter, r *http.Request) {
	goals, err := h.Service.List()
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, GoalsResponse{Savings: goals})
}

func (h *Handler) CreateSaving(w http.ResponseWriter, r *http.Request) {
	var dto CreateGoalDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteAppError(w, err)
		return
	}

	goal, err := h.Service.Create(dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, GoalResponse{Saving: *goal})
}

func (h *Handler) Contribute(w http.ResponseWriter, r *http.Request) {
	id, ok := h.IDParam(r, "id")
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	var dto ContributeDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteAppError(w, err)
		return
	}

	goal, err := h.Service.Contribute(id, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, GoalResponse{Saving: *goal})
}

func (h *Handler) DeleteSaving(w http.ResponseWriter, r *http.Request) {
	id, ok := h.IDParam(r, "id")
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteSuccess(w)
}
