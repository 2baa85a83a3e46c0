package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"anoa.com/freshwash/internal/entity"
	notifRepo "anoa.com/freshwash/internal/modules/notification/repository"
	"anoa.com/freshwash/pkg/apperror"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrStreamUnavailable is returned when live delivery has no broker behind it.
var ErrStreamUnavailable = errors.New("live notifications are not available")

type NotificationService interface {
	// Publish pushes an already stored notification to live subscribers.
	Publish(ctx context.Context, notification *entity.StaffNotification) error
	Subscribe(ctx context.Context, staffID uuid.UUID) (*redis.PubSub, error)

	GetNotifications(ctx context.Context, staffID uuid.UUID, limit, offset int) ([]entity.StaffNotification, error)
	MarkAsRead(ctx context.Context, id uint, staffID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, staffID uuid.UUID) error
	UnreadCount(ctx context.Context, staffID uuid.UUID) (int64, error)
}

type notificationService struct {
	repo        notifRepo.NotificationRepository
	redisClient *redis.Client
}

func NewNotificationService(repo notifRepo.NotificationRepository, redisClient *redis.Client) NotificationService {
	return &notificationService{
		repo:        repo,
		redisClient: redisClient,
	}
}

// Channel names the pub/sub channel carrying a staff member's notifications.
func Channel(staffID uuid.UUID) string {
	return fmt.Sprintf("staff_notifications:%s", staffID.String())
}

func (s *notificationService) Publish(ctx context.Context, notification *entity.StaffNotification) error {
	if s.redisClient == nil {
		return nil
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		return err
	}
	return s.redisClient.Publish(ctx, Channel(notification.StaffID), payload).Err()
}

func (s *notificationService) Subscribe(ctx context.Context, staffID uuid.UUID) (*redis.PubSub, error) {
	if s.redisClient == nil {
		return nil, ErrStreamUnavailable
	}

	pubsub := s.redisClient.Subscribe(ctx, Channel(staffID))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}
	return pubsub, nil
}

func (s *notificationService) GetNotifications(ctx context.Context, staffID uuid.UUID, limit, offset int) ([]entity.StaffNotification, error) {
	return s.repo.GetByStaffID(ctx, staffID, limit, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, id uint, staffID uuid.UUID) error {
	updated, err := s.repo.MarkAsRead(ctx, id, staffID)
	if err != nil {
		return err
	}
	if updated == 0 {
		return apperror.New(http.StatusNotFound, "notification not found", apperror.ErrNotFound)
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, staffID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, staffID)
}

func (s *notificationService) UnreadCount(ctx context.Context, staffID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, staffID)
}
