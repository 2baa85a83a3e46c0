package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ComplaintStatusOpen       = "Open"
	ComplaintStatusInProgress = "In Progress"
	ComplaintStatusResolved   = "Resolved"
)

type Complaint struct {
	ID      uint   `gorm:"primaryKey" json:"complaint_id"`
	OrderID uint   `gorm:"not null;index" json:"order_id"`
	Type    string `gorm:"size:100;not null" json:"complaint_type"`
	Details string `gorm:"type:text;not null" json:"complaint_details"`
	Status  string `gorm:"size:20;not null" json:"complaint_status"`

	Filing     *Filing     `gorm:"foreignKey:ComplaintID" json:"filing,omitempty"`
	Resolution *Resolution `gorm:"foreignKey:ComplaintID" json:"resolution,omitempty"`
}

func (Complaint) TableName() string {
	return "complaints"
}

// Filing links a complaint to the customer who raised it.
type Filing struct {
	CustomerID  uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	ComplaintID uint      `gorm:"primaryKey;autoIncrement:false" json:"complaint_id"`
	Date        time.Time `gorm:"type:date;not null" json:"complaint_date"`
}

func (Filing) TableName() string {
	return "filings"
}

// Resolution tracks the staff member responsible for closing a complaint.
type Resolution struct {
	StaffID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"staff_id"`
	ComplaintID uint       `gorm:"primaryKey;autoIncrement:false" json:"complaint_id"`
	ResolveDate *time.Time `gorm:"type:date" json:"resolve_date"`
}

func (Resolution) TableName() string {
	return "resolutions"
}

// Assignment routes an order to a staff member.
type Assignment struct {
	ID      uint      `gorm:"primaryKey"`
	StaffID uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderID uint      `gorm:"not null;index"`
	Date    time.Time `gorm:"type:date;not null"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// IsValidComplaintStatus reports whether status is one of the enumerated complaint states.
func IsValidComplaintStatus(status string) bool {
	switch status {
	case ComplaintStatusOpen, ComplaintStatusInProgress, ComplaintStatusResolved:
		return true
	}
	return false
}
