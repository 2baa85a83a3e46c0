package handler

import (
	"net/http"

	portfolio "anoa.com/freshwash/internal/modules/portfolio/service"
	"anoa.com/freshwash/pkg/response"
	"github.com/gin-gonic/gin"
)

type PortfolioHandler struct {
	service portfolio.PortfolioService
}

func NewPortfolioHandler(service portfolio.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{service: service}
}

func (h *PortfolioHandler) GetOwn(c *gin.Context) {
	memberID, err := response.GetMemberID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.service.GetOwn(c.Request.Context(), memberID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *PortfolioHandler) GetAll(c *gin.Context) {
	res, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": res})
}
