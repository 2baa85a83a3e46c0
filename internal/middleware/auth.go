package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"anoa.com/freshwash/internal/entity"
	"anoa.com/freshwash/internal/modules/auth/token"
	"anoa.com/freshwash/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionStore looks up the stored session of a member.
type SessionStore interface {
	FindCredential(ctx context.Context, memberID uuid.UUID) (*entity.Credential, error)
}

type AuthMiddleware struct {
	sessions SessionStore
	codec    *token.Codec
	now      func() time.Time
}

func NewAuthMiddleware(sessions SessionStore, codec *token.Codec) *AuthMiddleware {
	return &AuthMiddleware{
		sessions: sessions,
		codec:    codec,
		now:      time.Now,
	}
}

// WithClock overrides the time source used for the stored expiry check.
func (m *AuthMiddleware) WithClock(now func() time.Time) *AuthMiddleware {
	m.now = now
	return m
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")

		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenString = strings.TrimSpace(parts[1])
			}
		}

		// Browsers cannot set headers on WebSocket upgrades.
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			abort(c, http.StatusUnauthorized, "authorization required")
			return
		}

		claims, err := m.codec.Verify(tokenString)
		if err != nil {
			if errors.Is(err, token.ErrExpired) {
				abort(c, http.StatusUnauthorized, token.ErrExpired.Error())
				return
			}
			abort(c, http.StatusUnauthorized, token.ErrInvalidToken.Error())
			return
		}

		memberID, _ := uuid.Parse(claims.MemberID)
		cred, err := m.sessions.FindCredential(c.Request.Context(), memberID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, err)
			c.Abort()
			return
		}
		if err != nil || cred.SessionToken == nil || *cred.SessionToken != tokenString {
			abort(c, http.StatusUnauthorized, token.ErrInvalidToken.Error())
			return
		}

		if cred.SessionExpiry == nil || *cred.SessionExpiry <= m.now().Unix() {
			abort(c, http.StatusUnauthorized, token.ErrExpired.Error())
			return
		}

		c.Set(response.KeyMemberID, claims.MemberID)
		c.Set(response.KeyEmail, claims.Email)
		c.Set(response.KeyRole, cred.Role)
		c.Set(response.KeyTokenExpiry, *cred.SessionExpiry)
		c.Next()
	}
}

func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := response.GetIdentity(c)
		if err != nil {
			abort(c, http.StatusUnauthorized, "authorization required")
			return
		}

		if !identity.IsAdmin() {
			abort(c, http.StatusForbidden, "admin access required")
			return
		}

		c.Next()
	}
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
