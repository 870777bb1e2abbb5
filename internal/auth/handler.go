package auth

import (
	"net/http"
	"time"

	"github.com/frahmantamala/household-expenses/internal"
	"github.com/frahmantamala/household-expenses/internal/transport"
)

type CookieOptions struct {
	Secure bool
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Cookies CookieOptions
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI, cookies CookieOptions) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     svc,
		Cookies:     cookies,
	}
}

// Me handles GET /auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.Service.Authenticate(r.Context(), h.cookieValue(r))
	if err != nil {
		if !internal.IsUnauthorized(err) {
			h.Logger.Error("Me: session lookup failed", "error", err)
		}
		h.WriteJSON(w, http.StatusUnauthorized, MeResponse{Authenticated: false})
		return
	}
	h.WriteJSON(w, http.StatusOK, MeResponse{Authenticated: true, User: u})
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteAppError(w, err)
		return
	}

	sess, err := h.Service.Login(r.Context(), dto)
	if err != nil {
		h.Logger.Warn("authentication failed", "error", err)
		h.WriteAppError(w, err)
		return
	}

	cookie := h.newCookie(sess.Value)
	if sess.Remember {
		cookie.MaxAge = sess.MaxAge
		cookie.Expires = sess.ExpiresAt
	}
	http.SetCookie(w, cookie)
	h.WriteSuccess(w)
}

// Logout handles POST /auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Logout(r.Context(), h.cookieValue(r)); err != nil {
		h.Logger.Error("Logout: failed to drop session", "error", err)
	}

	cookie := h.newCookie("")
	cookie.MaxAge = -1
	cookie.Expires = time.Unix(0, 0)
	http.SetCookie(w, cookie)
	h.WriteSuccess(w)
}

// Register handles POST /auth/register; self sign-up is closed.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	h.WriteAppError(w, internal.ErrRegistrationClosed)
}

// RequireSession puts the session's user on the request context or answers 401.
func (h *Handler) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, err := h.Service.Authenticate(r.Context(), h.cookieValue(r))
		if err != nil {
			if !internal.IsUnauthorized(err) {
				h.Logger.Error("session middleware: lookup failed", "error", err)
			}
			h.WriteAppError(w, internal.ErrUnauthorized)
			return
		}

		ctx := internal.ContextWithUser(r.Context(), u)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) cookieValue(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

func (h *Handler) newCookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.Cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
