package handler

import (
	"net/http"

	"anoa.com/freshwash/internal/modules/payment/dto"
	payment "anoa.com/freshwash/internal/modules/payment/service"
	"anoa.com/freshwash/pkg/response"
	"anoa.com/freshwash/pkg/validator"
	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	service payment.PaymentService
}

func NewPaymentHandler(service payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) MakePayment(c *gin.Context) {
	memberID, err := response.GetMemberID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.MakePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.service.MakePayment(c.Request.Context(), memberID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *PaymentHandler) ListPayments(c *gin.Context) {
	identity, err := response.GetIdentity(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	payments, err := h.service.ListPayments(c.Request.Context(), identity.MemberID, identity.IsAdmin())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, payments)
}
