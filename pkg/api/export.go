package api

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/adfharrison1/todod/pkg/snapshot"
)

// HandleExport handles GET /export and returns a snapshot of all todos
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	h.log(r).Info("Exporting todos snapshot")

	todos, err := h.store.ListAll(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := snapshot.Write(&buf, todos); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="todos`+snapshot.FileExtension+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())

	h.log(r).Infof("Exported %d todos", len(todos))
}
