package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"souqly_backend/internal/models"
)

// NotificationStats aggregates counts per read state and per type.
type NotificationStats struct {
	Total  int64            `json:"total"`
	Unread int64            `json:"unread"`
	ByType map[string]int64 `json:"byType"`
}

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	GetByIDForUser(ctx context.Context, id, userID string) (*models.Notification, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Notification, error)
	ListByUserAndType(ctx context.Context, userID, notifType string, limit, offset int) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, id, userID string) error
	MarkAllAsRead(ctx context.Context, userID string) (int64, error)
	MarkAllAsReadByType(ctx context.Context, userID, notifType string) (int64, error)
	Delete(ctx context.Context, id, userID string) error
	DeleteAllByType(ctx context.Context, userID, notifType string) (int64, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	Stats(ctx context.Context, userID string) (*NotificationStats, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// ---------------- Writes ----------------

func (r *notificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, userID string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{"is_read": true, "read_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": time.Now()})
	return res.RowsAffected, res.Error
}

func (r *notificationRepository) MarkAllAsReadByType(ctx context.Context, userID, notifType string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND type = ? AND is_read = ?", userID, notifType, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": time.Now()})
	return res.RowsAffected, res.Error
}

func (r *notificationRepository) Delete(ctx context.Context, id, userID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *notificationRepository) DeleteAllByType(ctx context.Context, userID, notifType string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND type = ?", userID, notifType).
		Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}

// ---------------- Reads ----------------

func (r *notificationRepository) GetByIDForUser(ctx context.Context, id, userID string) (*models.Notification, error) {
	var n models.Notification
	err := r.db.WithContext(ctx).
		First(&n, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Notification, error) {
	var list []models.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *notificationRepository) ListByUserAndType(ctx context.Context, userID, notifType string, limit, offset int) ([]models.Notification, error) {
	var list []models.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND type = ?", userID, notifType).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) Stats(ctx context.Context, userID string) (*NotificationStats, error) {
	stats := &NotificationStats{ByType: make(map[string]int64)}

	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Count(&stats.Total).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&stats.Unread).Error
	if err != nil {
		return nil, err
	}

	type typeCount struct {
		Type  string
		Count int64
	}
	var rows []typeCount
	err = r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Select("type, COUNT(*) as count").
		Where("user_id = ?", userID).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.ByType[row.Type] = row.Count
	}
	return stats, nil
}
