package repository

import (
	"context"

	"anoa.com/freshwash/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.StaffNotification) error
	GetByStaffID(ctx context.Context, staffID uuid.UUID, limit, offset int) ([]entity.StaffNotification, error)
	MarkAsRead(ctx context.Context, id uint, staffID uuid.UUID) (int64, error)
	MarkAllAsRead(ctx context.Context, staffID uuid.UUID) error
	CountUnread(ctx context.Context, staffID uuid.UUID) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.StaffNotification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) GetByStaffID(ctx context.Context, staffID uuid.UUID, limit, offset int) ([]entity.StaffNotification, error) {
	var notifications []entity.StaffNotification
	err := r.db.WithContext(ctx).
		Where("staff_id = ?", staffID).
		Order("created_at desc, id desc").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id uint, staffID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.StaffNotification{}).
		Where("id = ? AND staff_id = ?", id, staffID).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, staffID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entity.StaffNotification{}).
		Where("staff_id = ? AND is_read = ?", staffID, false).
		Update("is_read", true).Error
}

func (r *notificationRepository) CountUnread(ctx context.Context, staffID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.StaffNotification{}).
		Where("staff_id = ? AND is_read = ?", staffID, false).
		Count(&count).Error
	return count, err
}
