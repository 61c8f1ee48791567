package api

import (
	"net/http"
)

// HandleCreate handles POST /create with a form-urlencoded description
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	h.log(r).Info("Creating new Todo")

	newTodo, err := decodeNewTodo(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	id, err := h.store.Create(r.Context(), newTodo.Description)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.log(r).WithField("id", id).Debug("Created Todo")
	h.acknowledge(w, r, Ack{Status: "ok", ID: id})
}
