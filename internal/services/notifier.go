package services

import (
	"context"

	"souqly_backend/internal/logger"
	"souqly_backend/internal/models"
	"souqly_backend/internal/repositories"
	"souqly_backend/internal/services/dto"
)

// notificationPush is the websocket frame wrapping a ledger row.
type notificationPush struct {
	Type         string               `json:"type"`
	Notification *models.Notification `json:"notification"`
}

// Deliverer pushes a payload to a connected user. Implemented by ws.Manager.
type Deliverer interface {
	DeliverToUser(userID string, payload any) bool
}

// Notifier is the fan-out point for every event that produces an in-app
// notification. Persistence always happens; the realtime push is best effort
// and its failure never fails the triggering operation.
type Notifier interface {
	NotifyNewMessage(ctx context.Context, msg *models.Message, sender *models.User)
	NotifyProductLiked(ctx context.Context, product *models.Product, likeCount int64)
	NotifyProductPromoted(ctx context.Context, product *models.Product, threshold int)
	NotifyAppointmentRequest(ctx context.Context, sellerID string, buyer *models.User, product *models.Product)
	NotifyAppointmentAccepted(ctx context.Context, buyerID string, seller *models.User, product *models.Product)
}

type notifier struct {
	notifications repositories.NotificationRepository
	deliverer     Deliverer
}

func NewNotifier(notifications repositories.NotificationRepository, deliverer Deliverer) Notifier {
	return &notifier{
		notifications: notifications,
		deliverer:     deliverer,
	}
}

func (n *notifier) persistAndPush(ctx context.Context, notif *models.Notification) {
	if err := n.notifications.Create(ctx, notif); err != nil {
		logger.CtxWithError(ctx, "failed to persist notification", err,
			"user_id", notif.UserID, "type", notif.Type)
		return
	}
	delivered := n.deliverer.DeliverToUser(notif.UserID, notificationPush{
		Type:         "notification",
		Notification: notif,
	})
	if !delivered {
		logger.CtxDebug(ctx, "notification stored, user offline",
			"user_id", notif.UserID, "type", notif.Type)
	}
}

func (n *notifier) NotifyNewMessage(ctx context.Context, msg *models.Message, sender *models.User) {
	notif := models.NewMessageNotification(msg.ReceiverID, sender.DisplayName(), msg.ConversationID, msg.ID)
	n.persistAndPush(ctx, notif)

	// The chat UI gets the full message as a separate frame so it can
	// render without refetching.
	n.deliverer.DeliverToUser(msg.ReceiverID, dto.NewMessagePush{
		Type:           "new_message",
		ConversationID: msg.ConversationID,
		Message:        msg,
	})
}

func (n *notifier) NotifyProductLiked(ctx context.Context, product *models.Product, likeCount int64) {
	notif := models.NewLikeNotification(product.SellerID, product.ID, product.Title, int(likeCount))
	n.persistAndPush(ctx, notif)
}

func (n *notifier) NotifyProductPromoted(ctx context.Context, product *models.Product, threshold int) {
	notif := models.NewPromotionNotification(product.SellerID, product.ID, product.Title, threshold)
	n.persistAndPush(ctx, notif)
}

func (n *notifier) NotifyAppointmentRequest(ctx context.Context, sellerID string, buyer *models.User, product *models.Product) {
	notif := models.NewAppointmentRequestNotification(sellerID, buyer.DisplayName(), product.ID, product.Title)
	n.persistAndPush(ctx, notif)
}

func (n *notifier) NotifyAppointmentAccepted(ctx context.Context, buyerID string, seller *models.User, product *models.Product) {
	notif := models.NewAppointmentAcceptedNotification(buyerID, seller.DisplayName(), product.ID, product.Title)
	n.persistAndPush(ctx, notif)
}
