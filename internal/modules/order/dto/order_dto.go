package dto

import "github.com/google/uuid"

type OrderItemInput struct {
	ItemID   uint `json:"item_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,gt=0"`
}

type PlaceOrderRequest struct {
	PickupDate string           `json:"pickup_date" binding:"required,datetime=2006-01-02"`
	Items      []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

type PlaceOrderResponse struct {
	Message     string  `json:"message"`
	OrderID     uint    `json:"order_id"`
	TotalAmount float64 `json:"total_amount"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type OrderLineResponse struct {
	ItemID   uint    `json:"item_id"`
	ItemType string  `json:"item_type"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type OrderResponse struct {
	OrderID      uint                `json:"order_id"`
	CustomerID   uuid.UUID           `json:"customer_id"`
	Status       string              `json:"order_status"`
	TotalAmount  float64             `json:"total_amount"`
	PickupDate   string              `json:"pickup_date"`
	DeliveryDate *string             `json:"delivery_date"`
	Items        []OrderLineResponse `json:"items"`
}

type ItemResponse struct {
	ItemID   uint    `json:"item_id"`
	ItemType string  `json:"item_type"`
	Price    float64 `json:"price"`
}
