package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"artist-membership.backend/pkg/metrics"
)

// MetricsMiddleware counts requests per route and status
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}
