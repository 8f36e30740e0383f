package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dustin/go-humanize"

	"inkblog/internal/session"
)

// multipart framing on top of the file itself
const uploadOverhead = 1 << 20

func (h *Handlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	limit := h.Cfg.MaxUploadSize
	r.Body = http.MaxBytesReader(w, r.Body, limit+uploadOverhead)

	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, fmt.Sprintf("File is too large (max %s)", humanize.IBytes(uint64(limit))), http.StatusRequestEntityTooLarge)
			return
		}
		WriteError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "Field image is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	upload, err := h.MediaService.Upload(r.Context(), session.IdentityFrom(r.Context()), r.FormValue("kind"), file, header.Size)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	writeSuccess(w, upload, http.StatusCreated)
}

func (h *Handlers) MediaConfig(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, h.MediaService.Config(), http.StatusOK)
}
