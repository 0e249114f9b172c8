package handler

import (
	"context"
	"log/slog"
	"net/http"

	"smart-life-organizer/internal/model"
	"smart-life-organizer/pkg/apierror"
)

type pinger interface {
	Health(ctx context.Context) error
}

type RootHandler struct {
	db pinger
}

func NewRootHandler(db pinger) *RootHandler {
	return &RootHandler{db: db}
}

func (h *RootHandler) Welcome(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Welcome to the Smart Life Organizer API"})
}

func (h *RootHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.Health(r.Context()); err != nil {
			slog.Error("health check failed", "error", err)
			writeError(w, apierror.New("UNAVAILABLE", "database unreachable", "", http.StatusServiceUnavailable))
			return
		}
	}

	writeJSON(w, http.StatusOK, model.HealthResponse{Status: "ok"})
}
