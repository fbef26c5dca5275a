package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/abgdnv/catalog/pkg/web"
)

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    float64   `json:"uptime"`
}

// HealthHandler reports liveness and process uptime.
type HealthHandler struct {
	started time.Time
	now     func() time.Time
	logger  *slog.Logger
}

// NewHealthHandler creates a HealthHandler whose uptime counts from started.
func NewHealthHandler(started time.Time, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{started: started, now: time.Now, logger: logger}
}

// HealthCheck is a simple health check endpoint.
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	now := h.now()
	web.RespondJSON(w, h.logger, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: now.UTC(),
		Uptime:    now.Sub(h.started).Seconds(),
	})
}
