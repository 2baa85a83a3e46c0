package dto

import "github.com/google/uuid"

type FileComplaintRequest struct {
	OrderID          uint   `json:"order_id" binding:"required"`
	ComplaintType    string `json:"complaint_type" binding:"required,max=100"`
	ComplaintDetails string `json:"complaint_details" binding:"required,max=2000"`
}

type FileComplaintResponse struct {
	Message       string    `json:"message"`
	ComplaintID   uint      `json:"complaint_id"`
	AssignedStaff uuid.UUID `json:"assigned_staff"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ComplaintResponse struct {
	ComplaintID   uint       `json:"complaint_id"`
	OrderID       uint       `json:"order_id"`
	Type          string     `json:"complaint_type"`
	Details       string     `json:"complaint_details"`
	Status        string     `json:"complaint_status"`
	CustomerID    *uuid.UUID `json:"customer_id,omitempty"`
	ComplaintDate *string    `json:"complaint_date,omitempty"`
	AssignedStaff *uuid.UUID `json:"assigned_staff,omitempty"`
	ResolveDate   *string    `json:"resolve_date"`
}
