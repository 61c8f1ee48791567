package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

const msgpackContentType = "application/msgpack"

// HandleList handles GET / and returns every todo ordered by id
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	h.log(r).Info("Requested list of todos")

	todos, err := h.store.ListAll(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.log(r).Debugf("Found %d todos", len(todos))

	if wantsMsgpack(r) {
		body, err := msgpack.Marshal(todos)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", msgpackContentType)
		w.Write(body)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(todos)
}

func wantsMsgpack(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		switch mediaType {
		case msgpackContentType, "application/x-msgpack":
			return true
		}
	}
	return false
}
