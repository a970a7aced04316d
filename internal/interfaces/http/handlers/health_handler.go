package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// CheckFunc probes a single dependency.  A nil error means healthy.
type CheckFunc func(ctx context.Context) error

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	version string
	started time.Time
	checks  map[string]CheckFunc
}

// NewHealthHandler builds a HealthHandler.  checks maps component names to
// readiness probes; liveness never consults them.
func NewHealthHandler(version string, checks map[string]CheckFunc) *HealthHandler {
	if checks == nil {
		checks = map[string]CheckFunc{}
	}
	return &HealthHandler{
		version: version,
		started: time.Now(),
		checks:  checks,
	}
}

type healthResponse struct {
	Status     string            `json:"status"`
	Version    string            `json:"version,omitempty"`
	UptimeSecs int64             `json:"uptime_seconds"`
	Components map[string]string `json:"components,omitempty"`
}

// Health reports overall service health with per-component detail.
func (h *HealthHandler) Health(c *gin.Context) {
	resp, healthy := h.runChecks(c.Request.Context())
	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

// Liveness reports that the process is running.  It never checks
// dependencies so that a broken backend cannot get the pod restarted.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:     "ok",
		UptimeSecs: int64(time.Since(h.started).Seconds()),
	})
}

// Readiness reports whether the service can serve traffic.
func (h *HealthHandler) Readiness(c *gin.Context) {
	resp, healthy := h.runChecks(c.Request.Context())
	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

// runChecks probes every dependency in parallel so one slow backend cannot
// stack its timeout on top of the others'.
func (h *HealthHandler) runChecks(ctx context.Context) (healthResponse, bool) {
	resp := healthResponse{
		Status:     "ok",
		Version:    h.version,
		UptimeSecs: int64(time.Since(h.started).Seconds()),
		Components: make(map[string]string, len(h.checks)),
	}
	healthy := true

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for name, check := range h.checks {
		wg.Add(1)
		go func(name string, check CheckFunc) {
			defer wg.Done()
			checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			err := check(checkCtx)
			cancel()

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				resp.Components[name] = "down: " + err.Error()
				healthy = false
				return
			}
			resp.Components[name] = "up"
		}(name, check)
	}
	wg.Wait()

	if !healthy {
		resp.Status = "degraded"
	}
	return resp, healthy
}
