package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// HandleDeleteById handles GET /delete/{id}. Deleting an id that does
// not exist still succeeds.
func (h *Handler) HandleDeleteById(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	id, err := parsePathID(vars["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.log(r).Infof("Deleting Todo with Id: %d", id)

	if err := h.store.DeleteById(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.acknowledge(w, r, Ack{Status: "deleted"})
}
