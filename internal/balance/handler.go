package balance

import (
	"net/http"

	"github.com/frahmantamala/household-expenses/internal/transport"
)

type ServiceAPI interface {
	Get(monthKey string) (Balance, error)
	List() ([]Balance, error)
	Set(dto SetBalanceDTO) (Balance, error)
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

// GetBalance answers one month when ?month is given, every recorded month otherwise.
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("month")
	if key == "" {
		balances, err := h.Service.List()
		if err != nil {
			h.WriteAppError(w, err)
			return
		}
		h.WriteJSON(w, http.StatusOK, BalancesResponse{Balances: balances})
		return
	}

	b, err := h.Service.Get(key)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, b)
}

func (h *Handler) SetBalance(w http.ResponseWriter, r *http.Request) {
	var dto SetBalanceDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteAppError(w, err)
		return
	}

	b, err := h.Service.Set(dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, b)
}
