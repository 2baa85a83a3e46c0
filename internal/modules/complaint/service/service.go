package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"anoa.com/freshwash/internal/entity"
	"anoa.com/freshwash/internal/modules/complaint/dto"
	"anoa.com/freshwash/internal/modules/complaint/repository"
	"anoa.com/freshwash/pkg/apperror"
	"anoa.com/freshwash/pkg/dateutil"
	"anoa.com/freshwash/pkg/sanitize"
	"github.com/google/uuid"
)

// Notifier delivers a stored staff notification to live listeners.
type Notifier interface {
	Publish(ctx context.Context, notification *entity.StaffNotification) error
}

type ComplaintService interface {
	FileComplaint(ctx context.Context, customerID uuid.UUID, req dto.FileComplaintRequest) (*dto.FileComplaintResponse, error)
	ListComplaints(ctx context.Context, memberID uuid.UUID, isAdmin bool) ([]dto.ComplaintResponse, error)
	UpdateStatus(ctx context.Context, id uint, req dto.UpdateStatusRequest) error
	DeleteComplaint(ctx context.Context, id uint) error
}

type complaintService struct {
	repo     repository.ComplaintRepository
	notifier Notifier
	now      func() time.Time
	pick     func(n int) int
}

// NewComplaintService wires the service. pick chooses an index in [0, n) and
// defaults to a uniform random choice.
func NewComplaintService(repo repository.ComplaintRepository, notifier Notifier, now func() time.Time, pick func(n int) int) ComplaintService {
	if pick == nil {
		pick = rand.IntN
	}
	return &complaintService{
		repo:     repo,
		notifier: notifier,
		now:      now,
		pick:     pick,
	}
}

// FileComplaint records the complaint and routes it to a randomly chosen staff
// member. Every row is written in one transaction, so a missing order or an
// empty staff roster leaves nothing behind.
func (s *complaintService) FileComplaint(ctx context.Context, customerID uuid.UUID, req dto.FileComplaintRequest) (*dto.FileComplaintResponse, error) {
	complaintType := sanitize.Text(req.ComplaintType)
	details := sanitize.Text(req.ComplaintDetails)
	if complaintType == "" || details == "" {
		return nil, apperror.New(http.StatusBadRequest, "complaint type and details are required", apperror.ErrInvalidInput)
	}

	today := dateutil.Today(s.now())
	complaint := &entity.Complaint{
		OrderID: req.OrderID,
		Type:    complaintType,
		Details: details,
		Status:  entity.ComplaintStatusOpen,
	}
	var note *entity.StaffNotification

	err := s.repo.WithinTransaction(ctx, func(tx repository.ComplaintRepository) error {
		owned, err := tx.OrderBelongsTo(ctx, req.OrderID, customerID)
		if err != nil {
			return err
		}
		if !owned {
			return apperror.New(http.StatusNotFound, "order not found", apperror.ErrNotFound)
		}

		if err := tx.CreateComplaint(ctx, complaint); err != nil {
			return err
		}
		if err := tx.CreateFiling(ctx, &entity.Filing{
			CustomerID:  customerID,
			ComplaintID: complaint.ID,
			Date:        today,
		}); err != nil {
			return err
		}

		staff, err := tx.ListStaffIDs(ctx)
		if err != nil {
			return err
		}
		if len(staff) == 0 {
			return apperror.ErrNoStaffAvailable
		}
		staffID := staff[s.pick(len(staff))]

		if err := tx.CreateAssignment(ctx, &entity.Assignment{
			StaffID: staffID,
			OrderID: req.OrderID,
			Date:    today,
		}); err != nil {
			return err
		}
		if err := tx.CreateResolution(ctx, &entity.Resolution{
			StaffID:     staffID,
			ComplaintID: complaint.ID,
		}); err != nil {
			return err
		}

		note = &entity.StaffNotification{
			StaffID:     staffID,
			Type:        entity.NotificationComplaintAssigned,
			ComplaintID: complaint.ID,
			OrderID:     req.OrderID,
			Message:     fmt.Sprintf("complaint #%d on order #%d assigned to you: %s", complaint.ID, req.OrderID, complaintType),
		}
		return tx.CreateNotification(ctx, note)
	})
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) || errors.Is(err, apperror.ErrNoStaffAvailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", apperror.ErrComplaintFilingFailed, err)
	}

	if s.notifier != nil {
		if err := s.notifier.Publish(ctx, note); err != nil {
			slog.WarnContext(ctx, "complaint assignment not published",
				"complaint_id", complaint.ID,
				"staff_id", note.StaffID,
				"error", err)
		}
	}

	return &dto.FileComplaintResponse{
		Message:       "complaint filed successfully",
		ComplaintID:   complaint.ID,
		AssignedStaff: note.StaffID,
	}, nil
}

// ListComplaints returns every complaint for admins and the caller's own filings otherwise.
func (s *complaintService) ListComplaints(ctx context.Context, memberID uuid.UUID, isAdmin bool) ([]dto.ComplaintResponse, error) {
	var filter *uuid.UUID
	if !isAdmin {
		filter = &memberID
	}

	complaints, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	res := make([]dto.ComplaintResponse, 0, len(complaints))
	for _, c := range complaints {
		res = append(res, ToComplaintResponse(c))
	}
	return res, nil
}

func (s *complaintService) UpdateStatus(ctx context.Context, id uint, req dto.UpdateStatusRequest) error {
	if !entity.IsValidComplaintStatus(req.Status) {
		return apperror.New(http.StatusBadRequest, "invalid status", apperror.ErrInvalidInput)
	}

	return s.repo.WithinTransaction(ctx, func(tx repository.ComplaintRepository) error {
		updated, err := tx.UpdateStatus(ctx, id, req.Status)
		if err != nil {
			return err
		}
		if updated == 0 {
			return apperror.New(http.StatusNotFound, "complaint not found", apperror.ErrNotFound)
		}

		var resolvedOn *time.Time
		if req.Status == entity.ComplaintStatusResolved {
			today := dateutil.Today(s.now())
			resolvedOn = &today
		}
		return tx.SetResolveDate(ctx, id, resolvedOn)
	})
}

func (s *complaintService) DeleteComplaint(ctx context.Context, id uint) error {
	return s.repo.WithinTransaction(ctx, func(tx repository.ComplaintRepository) error {
		deleted, err := tx.Delete(ctx, id)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return apperror.New(http.StatusNotFound, "complaint not found", apperror.ErrNotFound)
		}
		return nil
	})
}

func ToComplaintResponse(c entity.Complaint) dto.ComplaintResponse {
	res := dto.ComplaintResponse{
		ComplaintID: c.ID,
		OrderID:     c.OrderID,
		Type:        c.Type,
		Details:     c.Details,
		Status:      c.Status,
	}
	if c.Filing != nil {
		customerID := c.Filing.CustomerID
		res.CustomerID = &customerID
		res.ComplaintDate = dateutil.FormatOptional(&c.Filing.Date)
	}
	if c.Resolution != nil {
		staffID := c.Resolution.StaffID
		res.AssignedStaff = &staffID
		res.ResolveDate = dateutil.FormatOptional(c.Resolution.ResolveDate)
	}
	return res
}
