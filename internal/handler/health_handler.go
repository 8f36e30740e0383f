package handlers

import (
	"net/http"
)

type HealthResponse struct {
	Status string `json:"status"`
	Tables int    `json:"tables"`
}

// HealthHandler reports ok once the database answers.
func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	count, err := h.TablesService.GetCountTablesDB(r.Context())
	if err != nil {
		h.Logger.Error("health check failed", "error", err)
		WriteError(w, "Database unavailable", http.StatusServiceUnavailable)
		return
	}

	writeSuccess(w, HealthResponse{Status: "ok", Tables: count}, http.StatusOK)
}
