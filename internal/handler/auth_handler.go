package handlers

import (
	"net"
	"net/http"
	"strings"
	"time"

	"inkblog/internal/apperr"
	"inkblog/internal/models"
	"inkblog/internal/session"
)

type SessionResponse struct {
	User *models.Identity `json:"user"`
}

func (h *Handlers) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpInput
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.AuthService.SignUp(r.Context(), req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	// no session yet; the client signs in next
	writeSuccess(w, user, http.StatusCreated)
}

func (h *Handlers) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInInput
	if !decodeJSON(w, r, &req) {
		return
	}

	token, err := h.AuthService.SignIn(r.Context(), req, requestMeta(r))
	if err != nil {
		WriteAppError(w, err)
		return
	}

	h.setSessionCookie(w, token.Value, token.ExpiresAt)
	writeSuccess(w, token, http.StatusOK)
}

func (h *Handlers) SignOut(w http.ResponseWriter, r *http.Request) {
	token := session.TokenFromRequest(r, h.Cfg.Session.CookieName)

	if err := h.AuthService.SignOut(r.Context(), token); err != nil {
		WriteAppError(w, err)
		return
	}

	h.clearSessionCookie(w)
	writeSuccess(w, MessageResponse{Message: "Signed out"}, http.StatusOK)
}

// GetCurrentUser reports who the request is signed in as.
func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	identity := session.IdentityFrom(r.Context())
	if identity == nil {
		WriteAppError(w, apperr.Unauthenticated())
		return
	}

	writeSuccess(w, SessionResponse{User: identity}, http.StatusOK)
}

func (h *Handlers) setSessionCookie(w http.ResponseWriter, value string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.Cfg.Session.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.Cfg.Session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.Cfg.Session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Cfg.Session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func requestMeta(r *http.Request) session.Meta {
	ip, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
	ip = strings.TrimSpace(ip)
	if ip == "" {
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			ip = host
		}
	}

	return session.Meta{IPAddress: ip, UserAgent: r.UserAgent()}
}
