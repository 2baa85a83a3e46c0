package handler

import (
	"net/http"

	health "anoa.com/freshwash/internal/modules/health/service"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	service health.HealthService
}

func NewHealthHandler(service health.HealthService) *HealthHandler {
	return &HealthHandler{service: service}
}

func (h *HealthHandler) Health(c *gin.Context) {
	report := h.service.Check(c.Request.Context())
	if !report.Healthy {
		c.JSON(http.StatusServiceUnavailable, report)
		return
	}
	c.JSON(http.StatusOK, report)
}
