package dto

import "github.com/google/uuid"

// LoginRequest identifies the member by email or, failing that, by username.
type LoginRequest struct {
	Email    string `json:"email" binding:"omitempty,max=100"`
	Username string `json:"username" binding:"omitempty,max=50"`
	Password string `json:"password" binding:"required"`
}

type SignupRequest struct {
	Username     string `json:"username" binding:"required,max=50"`
	Email        string `json:"email" binding:"required,email,max=100"`
	DOB          string `json:"dob" binding:"required,datetime=2006-01-02"`
	Password     string `json:"password" binding:"required,min=6"`
	Role         string `json:"role" binding:"required,oneof=user admin"`
	AdminPasskey string `json:"adminPasskey"`
}

type UserResponse struct {
	MemberID uuid.UUID `json:"member_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
}

type AuthResponse struct {
	Message      string       `json:"message"`
	SessionToken string       `json:"sessionToken"`
	ExpiresAt    int64        `json:"expiresAt"`
	User         UserResponse `json:"user"`
}

type IsAuthResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Expiry   string `json:"expiry"`
}
