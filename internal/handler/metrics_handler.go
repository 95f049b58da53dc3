package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/binaryhub/portal-api/internal/service"
)

// MetricsHandler serves the Prometheus exposition endpoint.
type MetricsHandler struct {
	service *service.MetricsService
}

// NewMetricsHandler creates a new handler.
func NewMetricsHandler(svc *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{service: svc}
}

// Expose writes the current metric snapshot.
func (h *MetricsHandler) Expose(c *gin.Context) {
	h.service.Handler().ServeHTTP(c.Writer, c.Request)
}
