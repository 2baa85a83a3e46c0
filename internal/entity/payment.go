package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Payment struct {
	TransactionID string    `gorm:"size:36;primaryKey" json:"transaction_id"`
	Sender        string    `gorm:"size:100;not null" json:"sender"`
	Receiver      string    `gorm:"size:100;not null" json:"receiver"`
	Date          time.Time `gorm:"type:date;not null" json:"date"`
}

func (Payment) TableName() string {
	return "payments"
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.TransactionID == "" {
		p.TransactionID = uuid.NewString()
	}
	return nil
}

// PaymentApplication applies a payment to exactly one order.
type PaymentApplication struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CustomerID    uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	TransactionID string    `gorm:"size:36;not null" json:"transaction_id"`
	Mode          string    `gorm:"size:30;not null" json:"payment_mode"`
	Amount        float64   `gorm:"type:numeric(10,2);not null" json:"amount"`
	OrderID       uint      `gorm:"not null;uniqueIndex" json:"order_id"`
	Payment       *Payment  `gorm:"foreignKey:TransactionID;references:TransactionID" json:"payment,omitempty"`
}

func (PaymentApplication) TableName() string {
	return "payment_applications"
}
