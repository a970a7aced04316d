package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shallyquinn/Chatbot/internal/application/resolver"
	"github.com/Shallyquinn/Chatbot/internal/infrastructure/monitoring/prometheus"
)

// AreaHandler serves area-resolution requests.
type AreaHandler struct {
	resolver resolver.Service
	maxLimit int
	metrics  *prometheus.AppMetrics
}

// NewAreaHandler builds an AreaHandler.  maxLimit caps the per-request
// match limit; values <= 0 disable the cap.  metrics may be nil.
func NewAreaHandler(svc resolver.Service, maxLimit int, metrics *prometheus.AppMetrics) *AreaHandler {
	return &AreaHandler{resolver: svc, maxLimit: maxLimit, metrics: metrics}
}

// ResolveRequest is the body of POST /api/v1/resolve.
type ResolveRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

// Resolve matches free-text input against the known area universe.
func (h *AreaHandler) Resolve(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		badRequest(c, "query must not be blank")
		return
	}
	if h.maxLimit > 0 && req.Limit > h.maxLimit {
		req.Limit = h.maxLimit
	}

	start := time.Now()
	result, err := h.resolver.Resolve(c.Request.Context(), req.Query, req.Limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if h.metrics != nil {
		prometheus.RecordResolution(h.metrics, len(result.Matches), result.Degraded, time.Since(start))
	}
	c.JSON(http.StatusOK, result)
}
