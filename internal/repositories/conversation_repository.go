package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"souqly_backend/internal/models"
)

type ConversationRepository interface {
	// GetOrCreate returns the conversation for the (product, buyer, seller)
	// triple, creating it when absent. The bool reports whether a new row
	// was inserted.
	GetOrCreate(ctx context.Context, productID, buyerID, sellerID string) (*models.Conversation, bool, error)
	GetByID(ctx context.Context, id string) (*models.Conversation, error)
	ListByUser(ctx context.Context, userID string) ([]models.Conversation, error)
	TouchLastMessage(ctx context.Context, id string, at time.Time) error
}

type conversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) GetOrCreate(ctx context.Context, productID, buyerID, sellerID string) (*models.Conversation, bool, error) {
	conv, err := r.findByTriple(ctx, productID, buyerID, sellerID)
	if err == nil {
		return conv, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	fresh := &models.Conversation{
		ProductID: productID,
		BuyerID:   buyerID,
		SellerID:  sellerID,
	}
	createErr := r.db.WithContext(ctx).Create(fresh).Error
	if createErr == nil {
		return fresh, true, nil
	}

	// A concurrent request may have inserted the same triple between our
	// lookup and the insert. The unique index rejects the second insert,
	// so fall back to the winner's row.
	if errors.Is(createErr, gorm.ErrDuplicatedKey) {
		conv, err = r.findByTriple(ctx, productID, buyerID, sellerID)
		if err != nil {
			return nil, false, err
		}
		return conv, false, nil
	}
	return nil, false, createErr
}

func (r *conversationRepository) findByTriple(ctx context.Context, productID, buyerID, sellerID string) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND buyer_id = ? AND seller_id = ?", productID, buyerID, sellerID).
		First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepository) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.WithContext(ctx).
		Preload("Product").
		First(&conv, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepository) ListByUser(ctx context.Context, userID string) ([]models.Conversation, error) {
	var convs []models.Conversation
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Buyer").
		Preload("Seller").
		Where("buyer_id = ? OR seller_id = ?", userID, userID).
		Order("last_message_at DESC NULLS LAST, created_at DESC").
		Find(&convs).Error
	if err != nil {
		return nil, err
	}
	return convs, nil
}

func (r *conversationRepository) TouchLastMessage(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Conversation{}).
		Where("id = ?", id).
		Update("last_message_at", at).Error
}
