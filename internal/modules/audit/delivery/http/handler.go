package handler

import (
	"net/http"
	"strconv"

	audit "anoa.com/freshwash/internal/modules/audit/service"
	"anoa.com/freshwash/pkg/response"
	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	service audit.AuditService
}

func NewAuditHandler(service audit.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

func (h *AuditHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	logs, err := h.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": logs})
}
