package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"souqly_backend/internal/models"
	"souqly_backend/pkg/apperrors"
)

func newPromotionFixture(threshold int) (PromotionService, *fakeProductRepo, *fakeNotificationRepo, *fakeDeliverer) {
	products := newFakeProductRepo(&models.Product{
		BaseModel: models.BaseModel{ID: "prod-1"},
		SellerID:  "seller-1",
		Title:     "Table basse",
	})
	notifRepo := &fakeNotificationRepo{}
	deliverer := newFakeDeliverer("seller-1")
	notifier := NewNotifier(notifRepo, deliverer)
	svc := NewPromotionService(products, notifier, threshold)
	return svc, products, notifRepo, deliverer
}

func TestAddLikeIncrementsCount(t *testing.T) {
	svc, products, notifRepo, _ := newPromotionFixture(3)
	ctx := context.Background()

	result, err := svc.AddLike(ctx, "prod-1", "liker-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.NewLikeCount)
	assert.False(t, result.WasPromoted)
	assert.False(t, result.IsPromoted)

	p, err := products.GetByID(ctx, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, 1, p.LikeCount)

	// The seller got a like notification.
	list, err := notifRepo.ListByUserAndType(ctx, "seller-1", models.NotificationTypeLike, 20, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "❤️ Nouveau favori", list[0].Title)
}

func TestAddLikeUnknownProduct(t *testing.T) {
	svc, _, _, _ := newPromotionFixture(3)

	_, err := svc.AddLike(context.Background(), "missing", "liker-1")
	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
}

func TestAddLikeTwiceReturnsConflict(t *testing.T) {
	svc, products, _, _ := newPromotionFixture(3)
	ctx := context.Background()

	result, err := svc.AddLike(ctx, "prod-1", "liker-1")
	require.NoError(t, err)
	require.Equal(t, int64(1), result.NewLikeCount)

	_, err = svc.AddLike(ctx, "prod-1", "liker-1")
	require.ErrorIs(t, err, apperrors.ErrAlreadyLiked)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.HTTPCode)
	assert.Equal(t, "Vous avez déjà aimé ce produit", appErr.Message)

	// The rejected duplicate must not bump the count.
	p, err := products.GetByID(ctx, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, 1, p.LikeCount)

	status, err := svc.LikeStatus(ctx, "prod-1", "liker-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), status.LikeCount)
}

func TestAddLikePromotesAtThreshold(t *testing.T) {
	svc, products, notifRepo, _ := newPromotionFixture(3)
	ctx := context.Background()

	for _, liker := range []string{"liker-1", "liker-2"} {
		result, err := svc.AddLike(ctx, "prod-1", liker)
		require.NoError(t, err)
		assert.False(t, result.WasPromoted)
	}

	result, err := svc.AddLike(ctx, "prod-1", "liker-3")
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.NewLikeCount)
	assert.True(t, result.WasPromoted)
	assert.True(t, result.IsPromoted)

	p, err := products.GetByID(ctx, "prod-1")
	require.NoError(t, err)
	assert.True(t, p.IsPromoted)
	require.NotNil(t, p.PromotedAt)

	promos, err := notifRepo.ListByUserAndType(ctx, "seller-1", models.NotificationTypeProductUpdate, 20, 0)
	require.NoError(t, err)
	require.Len(t, promos, 1)
	assert.Equal(t, "🎉 Produit promu !", promos[0].Title)
}

func TestAddLikeAfterPromotionStaysPromoted(t *testing.T) {
	svc, _, notifRepo, _ := newPromotionFixture(3)
	ctx := context.Background()

	for _, liker := range []string{"liker-1", "liker-2", "liker-3"} {
		_, err := svc.AddLike(ctx, "prod-1", liker)
		require.NoError(t, err)
	}

	result, err := svc.AddLike(ctx, "prod-1", "liker-4")
	require.NoError(t, err)
	assert.Equal(t, int64(4), result.NewLikeCount)
	assert.False(t, result.WasPromoted)
	assert.True(t, result.IsPromoted)

	// Promotion fires exactly once.
	promos, err := notifRepo.ListByUserAndType(ctx, "seller-1", models.NotificationTypeProductUpdate, 20, 0)
	require.NoError(t, err)
	assert.Len(t, promos, 1)
}

func TestAddLikeCustomThreshold(t *testing.T) {
	svc, _, _, _ := newPromotionFixture(1)

	result, err := svc.AddLike(context.Background(), "prod-1", "liker-1")
	require.NoError(t, err)
	assert.True(t, result.WasPromoted)
}

func TestAddLikePushesRealtimeNotifications(t *testing.T) {
	svc, _, _, deliverer := newPromotionFixture(1)

	_, err := svc.AddLike(context.Background(), "prod-1", "liker-1")
	require.NoError(t, err)

	pushed := deliverer.payloadsFor("seller-1")
	require.Len(t, pushed, 2)
	for _, payload := range pushed {
		push, ok := payload.(notificationPush)
		require.True(t, ok)
		assert.Equal(t, "notification", push.Type)
		require.NotNil(t, push.Notification)
	}
}

func TestAddLikeByOwnerSkipsLikeNotification(t *testing.T) {
	svc, _, notifRepo, _ := newPromotionFixture(3)
	ctx := context.Background()

	result, err := svc.AddLike(ctx, "prod-1", "seller-1")
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, int64(1), result.NewLikeCount)

	list, err := notifRepo.ListByUserAndType(ctx, "seller-1", models.NotificationTypeLike, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestLikeStatus(t *testing.T) {
	svc, _, _, _ := newPromotionFixture(3)
	ctx := context.Background()

	status, err := svc.LikeStatus(ctx, "prod-1", "liker-1")
	require.NoError(t, err)
	assert.False(t, status.Liked)
	assert.Equal(t, int64(0), status.LikeCount)

	_, err = svc.AddLike(ctx, "prod-1", "liker-1")
	require.NoError(t, err)

	status, err = svc.LikeStatus(ctx, "prod-1", "liker-1")
	require.NoError(t, err)
	assert.True(t, status.Liked)
	assert.Equal(t, int64(1), status.LikeCount)
}

func TestLikeStatusUnknownProduct(t *testing.T) {
	svc, _, _, _ := newPromotionFixture(3)

	_, err := svc.LikeStatus(context.Background(), "missing", "liker-1")
	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
}

func TestPromotedProducts(t *testing.T) {
	svc, _, _, _ := newPromotionFixture(1)
	ctx := context.Background()

	list, err := svc.PromotedProducts(ctx, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.AddLike(ctx, "prod-1", "liker-1")
	require.NoError(t, err)

	list, err = svc.PromotedProducts(ctx, 20, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "prod-1", list[0].ID)
}
