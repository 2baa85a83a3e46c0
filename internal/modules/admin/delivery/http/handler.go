package handler

import (
	"net/http"

	"anoa.com/freshwash/internal/modules/admin/dto"
	adminService "anoa.com/freshwash/internal/modules/admin/service"
	"anoa.com/freshwash/pkg/response"
	"anoa.com/freshwash/pkg/validator"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	reportService adminService.ReportService
}

func NewAdminHandler(reportService adminService.ReportService) *AdminHandler {
	return &AdminHandler{
		reportService: reportService,
	}
}

func (h *AdminHandler) ListReports(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.reportService.Templates()})
}

func (h *AdminHandler) RunReport(c *gin.Context) {
	memberID, err := response.GetMemberID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.reportService.Run(c.Request.Context(), memberID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
