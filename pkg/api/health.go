package api

import (
	"encoding/json"
	"net/http"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HandleHealth handles GET requests to the health check endpoint
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:  "healthy",
		Message: "todod is running",
	}
	status := http.StatusOK

	if err := h.store.Ping(r.Context()); err != nil {
		h.log(r).WithError(err).Error("Health check failed")
		response = HealthResponse{
			Status:  "unhealthy",
			Message: "database unavailable",
		}
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}
