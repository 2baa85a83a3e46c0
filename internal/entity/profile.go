package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProfileKind selects the role-specific profile table of a member.
type ProfileKind int

const (
	KindCustomer ProfileKind = iota
	KindStaff
)

// ProfileKindForRole maps a credential role onto its profile table.
func ProfileKindForRole(role string) ProfileKind {
	if role == RoleAdmin {
		return KindStaff
	}
	return KindCustomer
}

func (k ProfileKind) String() string {
	if k == KindStaff {
		return "staff"
	}
	return "customer"
}

type Customer struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"customer_id"`
	Name    string    `gorm:"size:100;not null" json:"customer_name"`
	Email   string    `gorm:"size:100" json:"customer_email"`
	Address *string   `gorm:"type:text" json:"customer_address"`
	Phone   *string   `gorm:"size:20;uniqueIndex" json:"customer_phone"`
	Age     int       `json:"customer_age"`
	Image   *string   `gorm:"type:text" json:"customer_image"`
}

func (Customer) TableName() string {
	return "customers"
}

type Staff struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"staff_id"`
	Name     string    `gorm:"size:100;not null" json:"staff_name"`
	Email    string    `gorm:"size:100" json:"staff_email"`
	Age      int       `json:"staff_age"`
	HireDate time.Time `gorm:"type:date" json:"hire_date"`
	Phone    *string   `gorm:"size:20;uniqueIndex" json:"staff_phone"`
	Image    *string   `gorm:"type:text" json:"staff_image"`
}

func (Staff) TableName() string {
	return "staff"
}
