package expense

import (
	"net/http"

	"github.com/frahmantamala/household-expenses/internal/transport"
)

type ServiceAPI interface {
	List(monthKey string) ([]Expense, error)
	Create(dto CreateExpenseDTO) (*Expense, error)
	Delete(id int64) error
	AddItem(dto AddItemDTO) (*Item, error)
	DeleteItem(id int64) error
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

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.Service.List(r.URL.Query().Get("month"))
	if err != nil {
		h.Logger.Error("ListExpenses: failed to list expenses", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ExpensesResponse{Expenses: expenses})
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var dto CreateExpenseDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteAppError(w, err)
		return
	}

	created, err := h.Service.Create(dto)
	if err != nil {
		h.Logger.Warn("CreateExpense: rejected", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, ExpenseResponse{Expense: *created})
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
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

func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var dto AddItemDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "Invalid item payload")
		return
	}

	item, err := h.Service.AddItem(dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, ItemResponse{Item: *item})
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.IDParam(r, "id")
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "Invalid item ID")
		return
	}

	if err := h.Service.DeleteItem(id); err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteSuccess(w)
}
