package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Daksh-create349/stock-Master/pkg/metrics"
)

// MetricsMiddleware records request counts and latency per route pattern.
// Probe endpoints are not counted.
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	skip := skipSet(probePaths)
	return func(c *gin.Context) {
		if skip[c.Request.URL.Path] {
			c.Next()
			return
		}

		m.IncrementHTTPRequestsInFlight()
		defer m.DecrementHTTPRequestsInFlight()

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RecordHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

// MetricsEndpoint serves the Prometheus scrape endpoint
func MetricsEndpoint(m *metrics.Metrics) gin.HandlerFunc {
	return gin.WrapH(m.Handler())
}
