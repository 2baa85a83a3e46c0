package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// LaundryGroupID marks membership of this application in the shared member directory.
const LaundryGroupID = 10

// Member is the identity shared by customers and staff.
type Member struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username    string    `gorm:"size:50;not null" json:"username"`
	Email       string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	DateOfBirth time.Time `gorm:"type:date;not null" json:"date_of_birth"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Member) TableName() string {
	return "members"
}

func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Credential holds the password hash, role and the single live session of a member.
type Credential struct {
	MemberID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"member_id"`
	PasswordHash  string    `gorm:"size:255;not null" json:"-"`
	Role          string    `gorm:"size:20;not null" json:"role"`
	SessionToken  *string   `gorm:"type:text" json:"-"`
	SessionExpiry *int64    `json:"-"`
	Member        *Member   `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"member,omitempty"`
}

func (Credential) TableName() string {
	return "login"
}

type GroupMembership struct {
	MemberID uuid.UUID `gorm:"type:uuid;primaryKey" json:"member_id"`
	GroupID  int       `gorm:"primaryKey;autoIncrement:false" json:"group_id"`
}

func (GroupMembership) TableName() string {
	return "member_group_mappings"
}

type MemberImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MemberID  uuid.UUID `gorm:"type:uuid;not null;index" json:"member_id"`
	ImagePath string    `gorm:"type:text;not null" json:"image_path"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (MemberImage) TableName() string {
	return "images"
}

type AuditLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Timestamp   time.Time `gorm:"not null;index" json:"timestamp"`
	Description string    `gorm:"type:text;not null" json:"description"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
