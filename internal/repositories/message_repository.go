package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"souqly_backend/internal/models"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	ListByConversation(ctx context.Context, conversationID string) ([]models.Message, error)
	// MarkReadForReceiver flips every unread message addressed to the user
	// in the conversation and returns how many rows changed.
	MarkReadForReceiver(ctx context.Context, conversationID, receiverID string) (int64, error)
	CountUnreadInConversation(ctx context.Context, conversationID, receiverID string) (int64, error)
	LastInConversation(ctx context.Context, conversationID string) (*models.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *models.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *messageRepository) ListByConversation(ctx context.Context, conversationID string) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *messageRepository) MarkReadForReceiver(ctx context.Context, conversationID, receiverID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND is_read = ?", conversationID, receiverID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *messageRepository) CountUnreadInConversation(ctx context.Context, conversationID, receiverID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND is_read = ?", conversationID, receiverID, false).
		Count(&count).Error
	return count, err
}

func (r *messageRepository) LastInConversation(ctx context.Context, conversationID string) (*models.Message, error) {
	var msg models.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &msg, nil
}
