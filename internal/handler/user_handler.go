package handlers

import (
	"net/http"

	"inkblog/internal/models"
	"inkblog/internal/session"
)

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.UserService.Profile(r.Context(), session.IdentityFrom(r.Context()))
	if err != nil {
		WriteAppError(w, err)
		return
	}

	writeSuccess(w, profile, http.StatusOK)
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileInput
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.UserService.UpdateProfile(r.Context(), session.IdentityFrom(r.Context()), req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	writeSuccess(w, user, http.StatusOK)
}

func (h *Handlers) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordInput
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.UserService.UpdatePassword(r.Context(), session.IdentityFrom(r.Context()), req); err != nil {
		WriteAppError(w, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "Password updated"}, http.StatusOK)
}

// DeleteAccount removes the signed-in user and ends the current session.
func (h *Handlers) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.UserService.DeleteAccount(ctx, session.IdentityFrom(ctx), session.TokenFrom(ctx)); err != nil {
		WriteAppError(w, err)
		return
	}

	h.clearSessionCookie(w)
	writeSuccess(w, MessageResponse{Message: "Account deleted"}, http.StatusOK)
}
