package response

import (
	"log/slog"
	"net/http"

	"anoa.com/freshwash/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys populated by the auth middleware.
const (
	KeyMemberID    = "member_id"
	KeyEmail       = "email"
	KeyRole        = "role"
	KeyTokenExpiry = "token_expiry"
)

// Identity is the verified caller attached to a request.
type Identity struct {
	MemberID uuid.UUID
	Email    string
	Role     string
}

// IsAdmin reports whether the caller holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == "admin"
}

// GetMemberID retrieves the authenticated member ID from the context
func GetMemberID(c *gin.Context) (uuid.UUID, error) {
	memberIDStr, exists := c.Get(KeyMemberID)
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	memberID, err := uuid.Parse(memberIDStr.(string))
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return memberID, nil
}

// GetIdentity retrieves the full caller identity from the context.
func GetIdentity(c *gin.Context) (Identity, error) {
	memberID, err := GetMemberID(c)
	if err != nil {
		return Identity{}, err
	}

	return Identity{
		MemberID: memberID,
		Email:    c.GetString(KeyEmail),
		Role:     c.GetString(KeyRole),
	}, nil
}

// Error writes the standardized error response
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err)
	}

	c.JSON(code, gin.H{"error": apperror.PublicMessage(err)})
}
