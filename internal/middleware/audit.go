package middleware

import (
	"context"
	"time"

	audit "anoa.com/freshwash/internal/modules/audit/service"
	"anoa.com/freshwash/pkg/response"
	"github.com/gin-gonic/gin"
)

type RequestRecorder interface {
	RecordRequest(ctx context.Context, entry audit.RequestEntry)
}

// Audit records every request once its handler chain has finished. The
// query string is left out so tokens passed as ?token= never reach the trail.
func Audit(recorder RequestRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := audit.RequestEntry{
			Method:   c.Request.Method,
			Path:     c.Request.URL.Path,
			Status:   c.Writer.Status(),
			ClientIP: c.ClientIP(),
			Latency:  time.Since(start),
		}
		if memberID, err := response.GetMemberID(c); err == nil {
			entry.MemberID = &memberID
			entry.Email = c.GetString(response.KeyEmail)
		}

		recorder.RecordRequest(c.Request.Context(), entry)
	}
}
