package api

import (
	"net/http"
)

// HandleUpdate handles GET /update?id=..&description=..&done=..
// Updating an id that does not exist still succeeds.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	todo, err := decodeTodo(r.URL.Query())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.log(r).Infof("Updating Id: %d", todo.ID)

	if err := h.store.UpdateById(r.Context(), todo.ID, todo.Description, todo.Done); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.acknowledge(w, r, Ack{Status: "updated"})
}
