package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/lumenfide/lumen/internal/httputil"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HomeHandler struct {
	db Pinger
}

func NewHomeHandler(db Pinger) *HomeHandler {
	return &HomeHandler{db: db}
}

func (h *HomeHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status, code := "ok", http.StatusOK
	if h.db != nil {
		err := h.db.PingContext(ctx)
		if err != nil {
			slog.Error("health check failed", "error", err)
			status, code = "unavailable", http.StatusServiceUnavailable
		}
	}

	httputil.RespondJSON(w, code, map[string]any{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HomeHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	httputil.RespondError(w, http.StatusNotFound, "route not found")
}
