package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/stockline/inventory-api/internal/api/shared"
)

// healthProbeTimeout bounds the database round-trip for a health check.
const healthProbeTimeout = 2 * time.Second

// Status values reported by the health endpoint.
const (
	StatusUp   = "UP"
	StatusDown = "DOWN"
)

// DatabaseProber checks database availability with a trivial round-trip query.
type DatabaseProber interface {
	Ping(ctx context.Context) error
}

// HealthResponse reports the availability of the service and its database.
// The service is always UP if it can answer at all.
type HealthResponse struct {
	Service  string `json:"service"`
	Database string `json:"database"`
}

// HealthHandler handles health check requests
type HealthHandler struct {
	prober DatabaseProber
	logger *slog.Logger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(prober DatabaseProber, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{
		prober: prober,
		logger: logger.With("component", "health_handler"),
	}
}

// Check handles GET /healthz requests
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthProbeTimeout)
	defer cancel()

	dbStatus := StatusUp
	if err := h.prober.Ping(ctx); err != nil {
		h.logger.Warn("database health probe failed", "error", err)
		dbStatus = StatusDown
	}

	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Service:  StatusUp,
		Database: dbStatus,
	})
}
