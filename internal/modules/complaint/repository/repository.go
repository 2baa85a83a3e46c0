package repository

import (
	"context"
	"time"

	"anoa.com/freshwash/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ComplaintRepository interface {
	WithinTransaction(ctx context.Context, fn func(repo ComplaintRepository) error) error

	OrderBelongsTo(ctx context.Context, orderID uint, customerID uuid.UUID) (bool, error)
	ListStaffIDs(ctx context.Context) ([]uuid.UUID, error)

	CreateComplaint(ctx context.Context, complaint *entity.Complaint) error
	CreateFiling(ctx context.Context, filing *entity.Filing) error
	CreateAssignment(ctx context.Context, assignment *entity.Assignment) error
	CreateResolution(ctx context.Context, resolution *entity.Resolution) error
	CreateNotification(ctx context.Context, notification *entity.StaffNotification) error

	List(ctx context.Context, customerID *uuid.UUID) ([]entity.Complaint, error)
	UpdateStatus(ctx context.Context, id uint, status string) (int64, error)
	SetResolveDate(ctx context.Context, id uint, on *time.Time) error
	Delete(ctx context.Context, id uint) (int64, error)
}

type complaintRepository struct {
	db *gorm.DB
}

func NewComplaintRepository(db *gorm.DB) ComplaintRepository {
	return &complaintRepository{db: db}
}

func (r *complaintRepository) WithinTransaction(ctx context.Context, fn func(repo ComplaintRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&complaintRepository{db: tx})
	})
}

func (r *complaintRepository) OrderBelongsTo(ctx context.Context, orderID uint, customerID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Order{}).
		Where("id = ? AND customer_id = ?", orderID, customerID).
		Count(&count).Error
	return count > 0, err
}

// ListStaffIDs returns every staff member in a stable order.
func (r *complaintRepository) ListStaffIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&entity.Staff{}).
		Order("id").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *complaintRepository) CreateComplaint(ctx context.Context, complaint *entity.Complaint) error {
	return r.db.WithContext(ctx).Omit("Filing", "Resolution").Create(complaint).Error
}

func (r *complaintRepository) CreateFiling(ctx context.Context, filing *entity.Filing) error {
	return r.db.WithContext(ctx).Create(filing).Error
}

func (r *complaintRepository) CreateAssignment(ctx context.Context, assignment *entity.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *complaintRepository) CreateResolution(ctx context.Context, resolution *entity.Resolution) error {
	return r.db.WithContext(ctx).Create(resolution).Error
}

func (r *complaintRepository) CreateNotification(ctx context.Context, notification *entity.StaffNotification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// List returns complaints with their filing and resolution; a nil customerID lists all.
func (r *complaintRepository) List(ctx context.Context, customerID *uuid.UUID) ([]entity.Complaint, error) {
	var complaints []entity.Complaint
	query := r.db.WithContext(ctx).Preload("Filing").Preload("Resolution")

	if customerID != nil {
		query = query.
			Joins("JOIN filings ON filings.complaint_id = complaints.id").
			Where("filings.customer_id = ?", *customerID)
	}

	if err := query.Order("complaints.id DESC").Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

func (r *complaintRepository) UpdateStatus(ctx context.Context, id uint, status string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Complaint{}).
		Where("id = ?", id).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *complaintRepository) SetResolveDate(ctx context.Context, id uint, on *time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entity.Resolution{}).
		Where("complaint_id = ?", id).
		Update("resolve_date", on).Error
}

// Delete removes the complaint with its filing and resolution rows.
func (r *complaintRepository) Delete(ctx context.Context, id uint) (int64, error) {
	db := r.db.WithContext(ctx)
	if err := db.Where("complaint_id = ?", id).Delete(&entity.Filing{}).Error; err != nil {
		return 0, err
	}
	if err := db.Where("complaint_id = ?", id).Delete(&entity.Resolution{}).Error; err != nil {
		return 0, err
	}
	result := db.Where("id = ?", id).Delete(&entity.Complaint{})
	return result.RowsAffected, result.Error
}
