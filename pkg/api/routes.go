package api

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API routes with the given router
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/", h.HandleList).Methods("GET")
	router.HandleFunc("/create", h.HandleCreate).Methods("POST")
	router.HandleFunc("/delete/{id}", h.HandleDeleteById).Methods("GET")
	router.HandleFunc("/update", h.HandleUpdate).Methods("GET")

	router.HandleFunc("/health", h.HandleHealth).Methods("GET")
	router.HandleFunc("/export", h.HandleExport).Methods("GET")
}
