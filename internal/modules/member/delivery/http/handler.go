package handler

import (
	"net/http"

	"anoa.com/freshwash/internal/modules/member/dto"
	member "anoa.com/freshwash/internal/modules/member/service"
	"anoa.com/freshwash/pkg/response"
	"anoa.com/freshwash/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MemberHandler struct {
	service member.MemberService
}

func NewMemberHandler(service member.MemberService) *MemberHandler {
	return &MemberHandler{service: service}
}

func (h *MemberHandler) AddMember(c *gin.Context) {
	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	created, err := h.service.AddMember(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "member added successfully",
		"data":    created,
	})
}

func (h *MemberHandler) ListMembers(c *gin.Context) {
	members, err := h.service.ListMembers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": members})
}

func (h *MemberHandler) DeleteMember(c *gin.Context) {
	var req dto.DeleteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	memberID, err := uuid.Parse(req.MemberID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
		return
	}

	result, err := h.service.DeleteMember(c.Request.Context(), memberID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
