package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/binaryhub/portal-api/internal/service"
)

// Metrics records per-request duration and count using the metrics service.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metricsSvc.ObserveRequest(c.Request.Method, path, c.Writer.Status(), duration)
	}
}
