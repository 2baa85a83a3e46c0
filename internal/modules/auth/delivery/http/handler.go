package handler

import (
	"net/http"
	"time"

	"anoa.com/freshwash/internal/modules/auth/dto"
	auth "anoa.com/freshwash/internal/modules/auth/service"
	"anoa.com/freshwash/pkg/response"
	"anoa.com/freshwash/pkg/validator"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service auth.AuthService
}

func NewAuthHandler(service auth.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

// IsAuth echoes the identity the auth middleware attached to the request.
// It never touches the stores, so repeated calls observe the same state.
func (h *AuthHandler) IsAuth(c *gin.Context) {
	identity, err := response.GetIdentity(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	expiry := time.Unix(c.GetInt64(response.KeyTokenExpiry), 0).UTC()

	c.JSON(http.StatusOK, dto.IsAuthResponse{
		Message:  "user is authenticated",
		Username: identity.Email,
		Role:     identity.Role,
		Expiry:   expiry.Format(time.RFC3339),
	})
}
