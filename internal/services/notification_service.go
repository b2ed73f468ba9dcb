package services

import (
	"context"
	"errors"

	"souqly_backend/internal/models"
	"souqly_backend/internal/repositories"
	"souqly_backend/pkg/apperrors"
)

// NotificationService is the read/manage surface over a user's notification
// feed. Creation goes through the Notifier, never through here.
type NotificationService interface {
	// Create persists an arbitrary ledger row, used for events that have no
	// dedicated template (system announcements, admin messages).
	Create(ctx context.Context, userID, notifType, title, message, relatedID string, data map[string]interface{}) (*models.Notification, error)
	ListForUser(ctx context.Context, userID string, limit, offset int) ([]models.Notification, error)
	ListForUserByType(ctx context.Context, userID, notifType string, limit, offset int) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	Stats(ctx context.Context, userID string) (*repositories.NotificationStats, error)
	MarkAsRead(ctx context.Context, id, userID string) error
	MarkAllAsRead(ctx context.Context, userID string) (int64, error)
	MarkAllAsReadByType(ctx context.Context, userID, notifType string) (int64, error)
	Delete(ctx context.Context, id, userID string) error
	DeleteAllByType(ctx context.Context, userID, notifType string) (int64, error)
}

type notificationService struct {
	notifications repositories.NotificationRepository
}

func NewNotificationService(notifications repositories.NotificationRepository) NotificationService {
	return &notificationService{notifications: notifications}
}

func clampPagination(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (s *notificationService) Create(ctx context.Context, userID, notifType, title, message, relatedID string, data map[string]interface{}) (*models.Notification, error) {
	if !models.IsValidNotificationType(notifType) {
		return nil, apperrors.ErrInvalidNotificationType
	}

	var payload interface{}
	if data != nil {
		payload = data
	}
	n := models.NewNotification(userID, notifType, title, message, relatedID, payload)
	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return n, nil
}

func (s *notificationService) ListForUser(ctx context.Context, userID string, limit, offset int) ([]models.Notification, error) {
	limit, offset = clampPagination(limit, offset)
	list, err := s.notifications.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return list, nil
}

func (s *notificationService) ListForUserByType(ctx context.Context, userID, notifType string, limit, offset int) ([]models.Notification, error) {
	if !models.IsValidNotificationType(notifType) {
		return nil, apperrors.ErrInvalidNotificationType
	}
	limit, offset = clampPagination(limit, offset)
	list, err := s.notifications.ListByUserAndType(ctx, userID, notifType, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return list, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	count, err := s.notifications.CountUnread(ctx, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *notificationService) Stats(ctx context.Context, userID string) (*repositories.NotificationStats, error) {
	stats, err := s.notifications.Stats(ctx, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return stats, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, id, userID string) error {
	err := s.notifications.MarkAsRead(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	n, err := s.notifications.MarkAllAsRead(ctx, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return n, nil
}

func (s *notificationService) MarkAllAsReadByType(ctx context.Context, userID, notifType string) (int64, error) {
	if !models.IsValidNotificationType(notifType) {
		return 0, apperrors.ErrInvalidNotificationType
	}
	n, err := s.notifications.MarkAllAsReadByType(ctx, userID, notifType)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return n, nil
}

func (s *notificationService) Delete(ctx context.Context, id, userID string) error {
	err := s.notifications.Delete(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *notificationService) DeleteAllByType(ctx context.Context, userID, notifType string) (int64, error) {
	if !models.IsValidNotificationType(notifType) {
		return 0, apperrors.ErrInvalidNotificationType
	}
	n, err := s.notifications.DeleteAllByType(ctx, userID, notifType)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return n, nil
}
