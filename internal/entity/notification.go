package entity

import (
	"time"

	"github.com/google/uuid"
)

const NotificationComplaintAssigned = "complaint_assigned"

// StaffNotification tells a staff member about work routed to them.
type StaffNotification struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	StaffID     uuid.UUID `gorm:"type:uuid;not null;index" json:"staff_id"`
	Type        string    `gorm:"size:50;not null" json:"type"`
	ComplaintID uint      `gorm:"not null" json:"complaint_id"`
	OrderID     uint      `gorm:"not null" json:"order_id"`
	Message     string    `gorm:"type:text" json:"message"`
	IsRead      bool      `gorm:"default:false" json:"is_read"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (StaffNotification) TableName() string {
	return "staff_notifications"
}
