package services

import (
	"context"
	"errors"

	"souqly_backend/internal/logger"
	"souqly_backend/internal/models"
	"souqly_backend/internal/repositories"
	"souqly_backend/internal/services/dto"
	"souqly_backend/pkg/apperrors"
)

// PromotionService handles product likes and the automatic promotion that
// kicks in once a product collects enough of them.
type PromotionService interface {
	AddLike(ctx context.Context, productID, userID string) (*dto.LikeResult, error)
	LikeStatus(ctx context.Context, productID, userID string) (*dto.LikeStatus, error)
	PromotedProducts(ctx context.Context, limit, offset int) ([]models.Product, error)
}

type promotionService struct {
	products repositories.ProductRepository
	notifier Notifier

	likeThreshold int
}

func NewPromotionService(products repositories.ProductRepository, notifier Notifier, likeThreshold int) PromotionService {
	if likeThreshold <= 0 {
		likeThreshold = 3
	}
	return &promotionService{
		products:      products,
		notifier:      notifier,
		likeThreshold: likeThreshold,
	}
}

func (s *promotionService) AddLike(ctx context.Context, productID, userID string) (*dto.LikeResult, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	// The unique pair index is the real guard; two racing likes both pass
	// any pre-check, only one insert survives.
	if err := s.products.CreateLike(ctx, productID, userID); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.ErrAlreadyLiked
		}
		return nil, apperrors.InternalError(err)
	}

	count, err := s.products.RefreshLikeCount(ctx, productID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := &dto.LikeResult{
		Liked:        true,
		NewLikeCount: count,
		IsPromoted:   product.IsPromoted,
	}

	// Owners liking their own listing do not get notified about it.
	if userID != product.SellerID {
		s.notifier.NotifyProductLiked(ctx, product, count)
	}

	if !product.IsPromoted && count >= int64(s.likeThreshold) {
		promoted, err := s.products.Promote(ctx, productID, s.likeThreshold)
		if err != nil {
			logger.CtxWithError(ctx, "promotion update failed", err, "product_id", productID)
		} else if promoted {
			result.WasPromoted = true
			result.IsPromoted = true
			logger.CtxInfo(ctx, "product promoted",
				"product_id", productID, "like_count", count)
			s.notifier.NotifyProductPromoted(ctx, product, s.likeThreshold)
		} else {
			// Another liker won the conditional update first.
			result.IsPromoted = true
		}
	}

	return result, nil
}

func (s *promotionService) LikeStatus(ctx context.Context, productID, userID string) (*dto.LikeStatus, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	liked, err := s.products.HasLiked(ctx, productID, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LikeStatus{
		Liked:      liked,
		LikeCount:  int64(product.LikeCount),
		IsPromoted: product.IsPromoted,
	}, nil
}

func (s *promotionService) PromotedProducts(ctx context.Context, limit, offset int) ([]models.Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := s.products.ListPromoted(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return list, nil
}
