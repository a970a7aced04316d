package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shallyquinn/Chatbot/internal/infrastructure/monitoring/prometheus"
)

// Metrics records request counts, durations, and in-flight gauges.  The
// route template is used as the path label so parameterised routes do not
// explode cardinality.
func Metrics(m *prometheus.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		active := m.HTTPActiveRequests.WithLabelValues(method, path)
		active.Inc()
		start := time.Now()

		c.Next()

		active.Dec()
		status := c.Writer.Status()
		prometheus.RecordHTTPRequest(m, method, path, status, time.Since(start))
		if status >= 500 {
			prometheus.RecordError(m, "http", "server_error")
		}
	}
}
