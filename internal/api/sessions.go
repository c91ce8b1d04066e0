package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ashureev/ledgerbot/internal/domain"
	"github.com/ashureev/ledgerbot/internal/store"
	"github.com/ashureev/ledgerbot/internal/tracker"
)

const (
	defaultEntryLimit = 20
	maxEntryLimit     = 200
)

type sessionSummary struct {
	ID        string          `json:"id"`
	Activity  domain.Activity `json:"activity"`
	Status    domain.Status   `json:"status"`
	Date      string          `json:"date"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type sessionDetail struct {
	Session *domain.Session `json:"session"`
	Text    string          `json:"text"`
}

// Status reports how many sessions are held and whether the archive is reachable.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	archive := "disabled"
	status := http.StatusOK
	if h.archive != nil {
		archive = "ok"
		if err := h.archive.Ping(r.Context()); err != nil {
			slog.Warn("Archive ping failed", "error", err)
			archive = "unavailable"
			status = http.StatusServiceUnavailable
		}
	}
	JSON(w, status, map[string]any{
		"sessions": h.sessions.Len(),
		"archive":  archive,
	})
}

// ListSessions returns every held session, most recently updated first.
func (h *Handler) ListSessions(w http.ResponseWriter, _ *http.Request) {
	sessions := h.sessions.List()
	out := make([]sessionSummary, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, sessionSummary{
			ID:        s.ID,
			Activity:  s.Activity,
			Status:    s.Status,
			Date:      s.Date,
			UpdatedAt: s.UpdatedAt,
		})
	}
	JSON(w, http.StatusOK, out)
}

// GetSession returns one session with its rendered text.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		Error(w, http.StatusNotFound, "session_not_found")
		return
	}
	JSON(w, http.StatusOK, sessionDetail{Session: s, Text: tracker.Render(s)})
}

// ListEntries returns the most recent archived entries.
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		Error(w, http.StatusNotFound, "archive_disabled")
		return
	}

	limit := defaultEntryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			Error(w, http.StatusBadRequest, "invalid_limit")
			return
		}
		limit = min(n, maxEntryLimit)
	}

	entries, err := h.archive.Recent(r.Context(), limit)
	if err != nil {
		slog.Error("Failed to list archived entries", "error", err)
		Error(w, http.StatusInternalServerError, "archive_error")
		return
	}
	if entries == nil {
		entries = []store.Entry{}
	}
	JSON(w, http.StatusOK, entries)
}
