package api

import (
	"encoding/json"
	"net/http"
)

// Ack is the JSON acknowledgement sent for mutations when JSON acks are
// enabled.
type Ack struct {
	Status string `json:"status"`
	ID     int64  `json:"id,omitempty"`
}

// acknowledge finishes a successful mutation: a 303 redirect to the
// configured front-end by default, or a JSON Ack.
func (h *Handler) acknowledge(w http.ResponseWriter, r *http.Request, ack Ack) {
	if !h.jsonAcks {
		http.Redirect(w, r, h.redirectURL, http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(ack)
}
