package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	OrderStatusPending   = "Pending"
	OrderStatusPickedUp  = "Picked up"
	OrderStatusDelivered = "Delivered"
)

// MinimumPaymentAmount is the smallest order total that can be paid.
const MinimumPaymentAmount = 50.0

type Item struct {
	ID       uint    `gorm:"primaryKey" json:"item_id"`
	ItemType string  `gorm:"size:100;uniqueIndex;not null" json:"item_type"`
	Price    float64 `gorm:"type:numeric(10,2);not null" json:"price"`
}

func (Item) TableName() string {
	return "items"
}

type Order struct {
	ID           uint                `gorm:"primaryKey" json:"order_id"`
	CustomerID   uuid.UUID           `gorm:"type:uuid;not null;index" json:"customer_id"`
	Status       string              `gorm:"size:20;not null" json:"order_status"`
	TotalAmount  float64             `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	PickupDate   time.Time           `gorm:"type:date;not null" json:"pickup_date"`
	DeliveryDate *time.Time          `gorm:"type:date" json:"delivery_date"`
	Lines        []OrderLine         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Payment      *PaymentApplication `gorm:"foreignKey:OrderID" json:"payment,omitempty"`
	Complaints   []Complaint         `gorm:"foreignKey:OrderID" json:"complaints,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderLine struct {
	OrderID  uint  `gorm:"primaryKey;autoIncrement:false" json:"-"`
	ItemID   uint  `gorm:"primaryKey;autoIncrement:false" json:"item_id"`
	Quantity int   `gorm:"not null" json:"quantity"`
	Item     *Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

func (OrderLine) TableName() string {
	return "order_lines"
}

// Placement records which customer placed an order and when.
type Placement struct {
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderID    uint      `gorm:"primaryKey;autoIncrement:false"`
	Date       time.Time `gorm:"type:date;not null"`
}

func (Placement) TableName() string {
	return "placements"
}

// IsValidOrderStatus reports whether status is one of the enumerated order states.
func IsValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusPickedUp, OrderStatusDelivered:
		return true
	}
	return false
}
