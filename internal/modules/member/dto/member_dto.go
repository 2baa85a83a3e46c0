package dto

import (
	"time"

	"github.com/google/uuid"
)

type AddMemberRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email,max=100"`
	DOB      string `json:"dob" binding:"required,datetime=2006-01-02"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=user admin"`
}

type DeleteMemberRequest struct {
	MemberID string `json:"memberId" binding:"required,uuid"`
}

type MemberResponse struct {
	MemberID    uuid.UUID `json:"member_id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	DateOfBirth string    `json:"dob"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// Removal values reported by member deletion.
const (
	RemovalFull    = "full"
	RemovalPartial = "partial"
)

type DeleteMemberResponse struct {
	Message         string    `json:"message"`
	DeletedMemberID uuid.UUID `json:"deletedMemberId"`
	Removal         string    `json:"removal"`
}
