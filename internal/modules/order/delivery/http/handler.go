package handler

import (
	"net/http"
	"strconv"

	"anoa.com/freshwash/internal/modules/order/dto"
	order "anoa.com/freshwash/internal/modules/order/service"
	commonDto "anoa.com/freshwash/pkg/dto"
	"anoa.com/freshwash/pkg/response"
	"anoa.com/freshwash/pkg/validator"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	service order.OrderService
}

func NewOrderHandler(service order.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) ListItems(c *gin.Context) {
	items, err := h.service.ListItems(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	memberID, err := response.GetMemberID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.service.PlaceOrder(c.Request.Context(), memberID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	identity, err := response.GetIdentity(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	orders, err := h.service.ListOrders(c.Request.Context(), identity.MemberID, identity.IsAdmin())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), uint(orderID), req); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, commonDto.MessageResponse{Message: "order status updated successfully"})
}
