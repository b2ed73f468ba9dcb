package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"souqly_backend/internal/models"
)

type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
	ListPromoted(ctx context.Context, limit, offset int) ([]models.Product, error)

	// CreateLike inserts the (product, user) pair, returning ErrDuplicate
	// when the pair already exists.
	CreateLike(ctx context.Context, productID, userID string) error
	HasLiked(ctx context.Context, productID, userID string) (bool, error)

	// RefreshLikeCount rewrites like_count from the likes table so the
	// counter is always derived, and returns the new value.
	RefreshLikeCount(ctx context.Context, productID string) (int64, error)

	// Promote flips is_promoted in a single conditional update. It returns
	// true only for the caller that actually performed the flip, so
	// concurrent likers cannot both claim the promotion.
	Promote(ctx context.Context, productID string, minLikes int) (bool, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) ListPromoted(ctx context.Context, limit, offset int) ([]models.Product, error) {
	var list []models.Product
	err := r.db.WithContext(ctx).
		Preload("Seller").
		Where("is_promoted = ?", true).
		Order("promoted_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *productRepository) CreateLike(ctx context.Context, productID, userID string) error {
	like := &models.ProductLike{ProductID: productID, UserID: userID}
	err := r.db.WithContext(ctx).Create(like).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

func (r *productRepository) HasLiked(ctx context.Context, productID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProductLike{}).
		Where("product_id = ? AND user_id = ?", productID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *productRepository) RefreshLikeCount(ctx context.Context, productID string) (int64, error) {
	err := r.db.WithContext(ctx).Exec(
		`UPDATE products
		 SET like_count = (SELECT COUNT(*) FROM product_likes WHERE product_id = ?)
		 WHERE id = ?`,
		productID, productID,
	).Error
	if err != nil {
		return 0, err
	}

	var count int64
	err = r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("like_count").
		Where("id = ?", productID).
		Scan(&count).Error
	return count, err
}

func (r *productRepository) Promote(ctx context.Context, productID string, minLikes int) (bool, error) {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND like_count >= ? AND is_promoted = ?", productID, minLikes, false).
		Updates(map[string]interface{}{
			"is_promoted": true,
			"promoted_at": now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
