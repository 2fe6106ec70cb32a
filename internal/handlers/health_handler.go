package handlers

import (
	"context"
	"net/http"
	"time"
)

type pinger interface {
	PingContext(ctx context.Context) error
}

type draftCounter interface {
	Len() int
}

// HealthHandler reports whether the database answers
type HealthHandler struct {
	db     pinger
	drafts draftCounter
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db pinger, drafts draftCounter) *HealthHandler {
	return &HealthHandler{db: db, drafts: drafts}
}

// Health pings the database with a short timeout
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		respondWithError(w, http.StatusServiceUnavailable, "Database unavailable", "Health check failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"rascunhos": h.drafts.Len(),
	})
}
