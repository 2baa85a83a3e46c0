package dto

import "github.com/google/uuid"

type MakePaymentRequest struct {
	OrderID     uint   `json:"order_id" binding:"required"`
	PaymentMode string `json:"payment_mode" binding:"required,max=30"`
	Date        string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

type MakePaymentResponse struct {
	Message       string  `json:"message"`
	TransactionID string  `json:"transaction_id"`
	OrderID       uint    `json:"order_id"`
	Amount        float64 `json:"amount"`
}

type PaymentResponse struct {
	TransactionID string    `json:"transaction_id"`
	OrderID       uint      `json:"order_id"`
	CustomerID    uuid.UUID `json:"customer_id"`
	PaymentMode   string    `json:"payment_mode"`
	Amount        float64   `json:"amount"`
	Sender        string    `json:"sender"`
	Receiver      string    `json:"receiver"`
	PaymentDate   *string   `json:"payment_date"`
}
