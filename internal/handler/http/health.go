// Package http wires the API server: health probes, request logging,
// panic recovery, timeouts and HTTP metrics. Resource handlers live in the
// article and auth subpackages.
package http

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"news-portal/internal/handler/http/respond"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy", "degraded" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

// Checker reports the state of one dependency.
type Checker interface {
	Check(ctx context.Context) CheckStatus
}

// Pinger is satisfied by db.MongoPinger.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingCheck reports unhealthy when Ping fails.
type PingCheck struct{ Pinger Pinger }

func (c PingCheck) Check(ctx context.Context) CheckStatus {
	if err := c.Pinger.Ping(ctx); err != nil {
		return CheckStatus{Status: statusUnhealthy, Message: respond.SanitizeError(err)}
	}
	return CheckStatus{Status: statusHealthy}
}

// SQLCheck pings the database and reports connection pool statistics.
type SQLCheck struct{ DB *sql.DB }

func (c SQLCheck) Check(ctx context.Context) CheckStatus {
	if err := c.DB.PingContext(ctx); err != nil {
		return CheckStatus{Status: statusUnhealthy, Message: respond.SanitizeError(err)}
	}

	stats := c.DB.Stats()
	details := map[string]any{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}
	// MaxOpenConnections 0 は無制限
	if stats.MaxOpenConnections == 0 {
		return CheckStatus{Status: statusDegraded, Message: "connection pool max connections not configured", Details: details}
	}
	utilization := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
	details["utilization_percent"] = utilization
	if utilization >= 80.0 {
		return CheckStatus{Status: statusDegraded, Message: "connection pool utilization above 80%", Details: details}
	}
	return CheckStatus{Status: statusHealthy, Details: details}
}

// BreakerCheck reports the media store circuit breaker. An open breaker
// degrades the service without failing it; reads keep working.
type BreakerCheck struct{ State func() string }

func (c BreakerCheck) Check(context.Context) CheckStatus {
	state := c.State()
	status := statusHealthy
	if state == "open" {
		status = statusDegraded
	}
	return CheckStatus{Status: status, Details: map[string]any{"circuit_breaker": state}}
}

// HealthHandler runs every check and answers 503 if any is unhealthy.
type HealthHandler struct {
	Checks  map[string]Checker
	Version string
}

// ServeHTTP ヘルスチェック
// @Summary      ヘルスチェック
// @Tags         ops
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus, len(h.Checks))
	status := statusHealthy
	for name, c := range h.Checks {
		res := c.Check(ctx)
		checks[name] = res
		switch {
		case res.Status == statusUnhealthy:
			status = statusUnhealthy
		case res.Status == statusDegraded && status == statusHealthy:
			status = statusDegraded
		}
	}

	code := http.StatusOK
	if status == statusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

// ReadyHandler answers 200 once every dependency responds.
type ReadyHandler struct {
	Checks map[string]Checker
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	for name, c := range h.Checks {
		if res := c.Check(ctx); res.Status == statusUnhealthy {
			http.Error(w, name+" not ready: "+res.Message, http.StatusServiceUnavailable)
			return
		}
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ready")); err != nil {
		slog.Default().Warn("ready: failed to write response", slog.Any("error", err))
	}
}

// LiveHandler always answers 200 while the process can serve requests.
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		slog.Default().Warn("alive: failed to write response", slog.Any("error", err))
	}
}
