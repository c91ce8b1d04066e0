// Package api provides the read-only ops HTTP API for sessions and the archive.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ashureev/ledgerbot/internal/store"
)

// Handler serves session and archive state. archive may be nil.
type Handler struct {
	sessions store.SessionStore
	archive  store.Archive
}

// NewHandler creates a new Handler.
func NewHandler(sessions store.SessionStore, archive store.Archive) *Handler {
	return &Handler{sessions: sessions, archive: archive}
}

// RegisterRoutes registers the API routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/status", h.Status)
		r.Get("/sessions", h.ListSessions)
		r.Get("/sessions/{id}", h.GetSession)
		r.Get("/entries", h.ListEntries)
	})
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}
