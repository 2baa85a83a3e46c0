package handler

import (
	"net/http"
	"strconv"

	"anoa.com/freshwash/internal/modules/complaint/dto"
	complaint "anoa.com/freshwash/internal/modules/complaint/service"
	commonDto "anoa.com/freshwash/pkg/dto"
	"anoa.com/freshwash/pkg/response"
	"anoa.com/freshwash/pkg/validator"
	"github.com/gin-gonic/gin"
)

type ComplaintHandler struct {
	service complaint.ComplaintService
}

func NewComplaintHandler(service complaint.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{service: service}
}

func (h *ComplaintHandler) FileComplaint(c *gin.Context) {
	memberID, err := response.GetMemberID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.FileComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.service.FileComplaint(c.Request.Context(), memberID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *ComplaintHandler) GetComplaints(c *gin.Context) {
	identity, err := response.GetIdentity(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	complaints, err := h.service.ListComplaints(c.Request.Context(), identity.MemberID, identity.IsAdmin())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, complaints)
}

func (h *ComplaintHandler) UpdateStatus(c *gin.Context) {
	id, ok := complaintID(c)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, commonDto.MessageResponse{Message: "complaint status updated successfully"})
}

func (h *ComplaintHandler) DeleteComplaint(c *gin.Context) {
	id, ok := complaintID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteComplaint(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, commonDto.MessageResponse{Message: "complaint deleted successfully"})
}

func complaintID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid complaint id"})
		return 0, false
	}
	return uint(id), true
}
