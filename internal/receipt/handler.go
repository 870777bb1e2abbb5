package receipt

import (
	"net/http"
	"net/url"
	"os"

	"github.com/frahmantamala/household-expenses/internal/transport"
	"github.com/go-chi/chi"
)

type Handler struct {
	*transport.BaseHandler
	Store *Store
}

func NewHandler(baseHandler *transport.BaseHandler, store *Store) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Store:       store,
	}
}

// GetReceipt handles GET /receipts/*
func (h *Handler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}

	p, err := h.Store.Path(name)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	data, err := os.ReadFile(p)
	if err != nil {
		h.Logger.Error("GetReceipt: read failed", "error", err, "name", name)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
