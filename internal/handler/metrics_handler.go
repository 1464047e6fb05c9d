package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/studiohq/studio-api/internal/service"
)

// MetricsHandler serves the Prometheus scrape endpoint.
type MetricsHandler struct {
	service *service.MetricsService
}

// NewMetricsHandler constructs a metrics handler.
func NewMetricsHandler(svc *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{service: svc}
}

// Expose serves the Prometheus text exposition.
func (h *MetricsHandler) Expose(c *gin.Context) {
	h.service.Handler().ServeHTTP(c.Writer, c.Request)
}
