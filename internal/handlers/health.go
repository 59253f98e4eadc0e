package handlers

import (
	"context"
	"net/http"
	"time"
)

// HealthHandler responds with service health information.
type HealthHandler struct {
	// Ping checks the database; nil means the service runs without one.
	Ping func(ctx context.Context) error
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Handle implements GET /healthz.
func (h HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	if h.Ping == nil {
		respondJSON(ctx, w, http.StatusOK, healthResponse{Status: "ok", Database: "disabled"})
		return
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := h.Ping(pingCtx); err != nil {
		respondJSON(ctx, w, http.StatusServiceUnavailable, healthResponse{Status: "degraded", Database: "unreachable"})
		return
	}
	respondJSON(ctx, w, http.StatusOK, healthResponse{Status: "ok", Database: "ok"})
}
