package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"anoa.com/freshwash/internal/entity"
	"anoa.com/freshwash/internal/modules/audit/repository"
	"github.com/google/uuid"
)

// RequestEntry describes one served HTTP request.
type RequestEntry struct {
	Method   string
	Path     string
	Status   int
	ClientIP string
	Latency  time.Duration
	MemberID *uuid.UUID
	Email    string
}

type AuditService interface {
	RecordRequest(ctx context.Context, entry RequestEntry)
	RecordEvent(ctx context.Context, memberID uuid.UUID, description string)
	List(ctx context.Context, limit, offset int) ([]entity.AuditLog, error)
}

type auditService struct {
	repo  repository.AuditRepository
	trail *slog.Logger
	now   func() time.Time
}

// NewAuditService records to the trail logger and, for identified callers,
// to the audit_logs table. A nil trail disables the file.
func NewAuditService(repo repository.AuditRepository, trail *slog.Logger, now func() time.Time) AuditService {
	return &auditService{
		repo:  repo,
		trail: trail,
		now:   now,
	}
}

func (s *auditService) RecordRequest(ctx context.Context, entry RequestEntry) {
	if s.trail != nil {
		attrs := []any{
			"method", entry.Method,
			"path", entry.Path,
			"status", entry.Status,
			"ip", entry.ClientIP,
			"latency", entry.Latency,
		}
		if entry.MemberID != nil {
			attrs = append(attrs, "member_id", entry.MemberID.String())
		}
		s.trail.InfoContext(ctx, "request", attrs...)
	}

	if entry.MemberID == nil {
		return
	}
	s.persist(ctx, fmt.Sprintf("%s %s -> %d by %s (%s)",
		entry.Method, entry.Path, entry.Status, entry.Email, entry.MemberID))
}

func (s *auditService) RecordEvent(ctx context.Context, memberID uuid.UUID, description string) {
	if s.trail != nil {
		s.trail.InfoContext(ctx, "event", "member_id", memberID.String(), "description", description)
	}
	s.persist(ctx, fmt.Sprintf("%s (%s)", description, memberID))
}

func (s *auditService) List(ctx context.Context, limit, offset int) ([]entity.AuditLog, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *auditService) persist(ctx context.Context, description string) {
	err := s.repo.Create(ctx, &entity.AuditLog{
		Timestamp:   s.now().UTC(),
		Description: description,
	})
	if err != nil {
		slog.WarnContext(ctx, "audit log not persisted", "error", err)
	}
}
