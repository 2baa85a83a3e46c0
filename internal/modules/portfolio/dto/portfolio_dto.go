package dto

import (
	complaintDto "anoa.com/freshwash/internal/modules/complaint/dto"
	orderDto "anoa.com/freshwash/internal/modules/order/dto"
	paymentDto "anoa.com/freshwash/internal/modules/payment/dto"
	"github.com/google/uuid"
)

type PortfolioOrder struct {
	orderDto.OrderResponse
	Payment    *paymentDto.PaymentResponse      `json:"payment"`
	Complaints []complaintDto.ComplaintResponse `json:"complaints"`
}

type PortfolioResponse struct {
	CustomerID   uuid.UUID        `json:"customer_id"`
	CustomerName string           `json:"customer_name,omitempty"`
	TotalSpent   float64          `json:"total_spent"`
	Orders       []PortfolioOrder `json:"orders"`
}
