package dto

import "github.com/google/uuid"

type UpdateAddressInput struct {
	Address string `json:"address" binding:"required,max=500"`
}

type UpdatePhoneInput struct {
	Phone string `json:"phone" binding:"required"`
}

// UpdateImageInput accepts an already hosted image when no file is uploaded.
type UpdateImageInput struct {
	ImagePath string `json:"imagePath" form:"imagePath"`
}

// ProfileResponse is the role-specific profile of the caller. Fields that the
// role's profile does not carry are omitted.
type ProfileResponse struct {
	MemberID uuid.UUID `json:"member_id"`
	Kind     string    `json:"kind"`
	Role     string    `json:"role"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Phone    *string   `json:"phone"`
	Address  *string   `json:"address,omitempty"`
	Age      *int      `json:"age,omitempty"`
	Image    *string   `json:"image"`
	HireDate *string   `json:"hire_date,omitempty"`
}
