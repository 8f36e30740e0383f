package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"inkblog/internal/models"
	"inkblog/internal/session"
)

func (h *Handlers) ListPublishedPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.ListPublished(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}

	writeSuccess(w, posts, http.StatusOK)
}

// GetPublishedPost serves /api/blog/{slug}. Signed-in owners also see their drafts.
func (h *Handlers) GetPublishedPost(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	detail, err := h.PostService.GetPublishedBySlug(r.Context(), session.IdentityFrom(r.Context()), slug)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	writeSuccess(w, detail, http.StatusOK)
}

func (h *Handlers) ListOwnPosts(w http.ResponseWriter, r *http.Request) {
	own, err := h.PostService.ListOwn(r.Context(), session.IdentityFrom(r.Context()))
	if err != nil {
		WriteAppError(w, err)
		return
	}

	writeSuccess(w, own, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req models.PostInput
	if !decodeJSON(w, r, &req) {
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), session.IdentityFrom(r.Context()), req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	writeSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	view, err := h.PostService.GetPost(r.Context(), session.IdentityFrom(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		WriteAppError(w, err)
		return
	}

	writeSuccess(w, view, http.StatusOK)
}

func (h *Handlers) GetPostForEdit(w http.ResponseWriter, r *http.Request) {
	post, err := h.PostService.GetForEdit(r.Context(), session.IdentityFrom(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		WriteAppError(w, err)
		return
	}

	writeSuccess(w, post, http.StatusOK)
}

// UpdatePost takes the post id from the path; an id in the body is ignored.
func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	var req models.EditPostInput
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = mux.Vars(r)["id"]

	post, err := h.PostService.EditPost(r.Context(), session.IdentityFrom(r.Context()), req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	writeSuccess(w, post, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	err := h.PostService.DeletePost(r.Context(), session.IdentityFrom(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		WriteAppError(w, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "Blog deleted"}, http.StatusOK)
}
