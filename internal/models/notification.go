package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// ---------------- Notification types ----------------

const (
	NotificationTypeMessage             = "message"
	NotificationTypeLike                = "like"
	NotificationTypeProductUpdate       = "product_update"
	NotificationTypeReview              = "review"
	NotificationTypeSale                = "sale"
	NotificationTypeAppointmentRequest  = "appointment_request"
	NotificationTypeAppointmentAccepted = "appointment_accepted"
	NotificationTypeSystem              = "system"
)

var notificationTypes = map[string]struct{}{
	NotificationTypeMessage:             {},
	NotificationTypeLike:                {},
	NotificationTypeProductUpdate:       {},
	NotificationTypeReview:              {},
	NotificationTypeSale:                {},
	NotificationTypeAppointmentRequest:  {},
	NotificationTypeAppointmentAccepted: {},
	NotificationTypeSystem:              {},
}

// IsValidNotificationType reports whether t is part of the enumeration.
func IsValidNotificationType(t string) bool {
	_, ok := notificationTypes[t]
	return ok
}

// ---------------- Model ----------------

// Notification is a persisted in-app notification. RelatedID points at the
// entity the notification is about (conversation, product); Data carries the
// remaining free-form payload whose shape depends on Type.
type Notification struct {
	BaseModel
	UserID    string         `gorm:"type:uuid;not null;index" json:"userId"`
	Type      string         `gorm:"not null;index" json:"type"`
	Title     string         `gorm:"not null" json:"title"`
	Message   string         `gorm:"type:text;not null" json:"message"`
	RelatedID *string        `gorm:"type:uuid;index" json:"relatedId,omitempty"`
	Data      datatypes.JSON `json:"data,omitempty"`
	IsRead    bool           `gorm:"not null;default:false;index" json:"isRead"`
	ReadAt    *time.Time     `json:"readAt,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}

func marshalData(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

func relatedID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

// ---------------- Factories ----------------

// NewNotification builds a notification with an arbitrary payload. The typed
// constructors below are preferred for the known event kinds.
func NewNotification(userID, notifType, title, message, related string, data interface{}) *Notification {
	return &Notification{
		UserID:    userID,
		Type:      notifType,
		Title:     title,
		Message:   message,
		RelatedID: relatedID(related),
		Data:      marshalData(data),
	}
}

// NewMessageNotification is sent to the receiver of a chat message.
func NewMessageNotification(userID, senderName, conversationID, messageID string) *Notification {
	return &Notification{
		UserID:    userID,
		Type:      NotificationTypeMessage,
		Title:     "💬 Nouveau message",
		Message:   fmt.Sprintf("%s vous a envoyé un message", senderName),
		RelatedID: relatedID(conversationID),
		Data: marshalData(map[string]string{
			"conversationId": conversationID,
			"messageId":      messageID,
		}),
	}
}

// NewLikeNotification is sent to a seller when someone likes their product.
func NewLikeNotification(sellerID, productID, productTitle string, likeCount int) *Notification {
	return &Notification{
		UserID:    sellerID,
		Type:      NotificationTypeLike,
		Title:     "❤️ Nouveau favori",
		Message:   fmt.Sprintf("Quelqu'un a ajouté %q aux favoris", productTitle),
		RelatedID: relatedID(productID),
		Data: marshalData(map[string]interface{}{
			"productId": productID,
			"likeCount": likeCount,
		}),
	}
}

// NewPromotionNotification is sent to a seller when their product crosses the
// like threshold and gets promoted.
func NewPromotionNotification(sellerID, productID, productTitle string, threshold int) *Notification {
	return &Notification{
		UserID:    sellerID,
		Type:      NotificationTypeProductUpdate,
		Title:     "🎉 Produit promu !",
		Message:   fmt.Sprintf("Félicitations ! Votre produit %q a été automatiquement promu après avoir reçu %d j'aimes !", productTitle, threshold),
		RelatedID: relatedID(productID),
		Data: marshalData(map[string]interface{}{
			"productId": productID,
			"promoted":  true,
		}),
	}
}

// NewAppointmentRequestNotification is sent to a seller when a buyer asks to
// meet about a product.
func NewAppointmentRequestNotification(sellerID, buyerName, productID, productTitle string) *Notification {
	return &Notification{
		UserID:    sellerID,
		Type:      NotificationTypeAppointmentRequest,
		Title:     "📅 Demande de rendez-vous",
		Message:   fmt.Sprintf("%s souhaite prendre rendez-vous pour %q", buyerName, productTitle),
		RelatedID: relatedID(productID),
	}
}

// NewAppointmentAcceptedNotification is sent back to the buyer.
func NewAppointmentAcceptedNotification(buyerID, sellerName, productID, productTitle string) *Notification {
	return &Notification{
		UserID:    buyerID,
		Type:      NotificationTypeAppointmentAccepted,
		Title:     "✅ Rendez-vous confirmé",
		Message:   fmt.Sprintf("%s a accepté votre demande de rendez-vous", sellerName),
		RelatedID: relatedID(productID),
	}
}

// NewSystemNotification carries operator announcements.
func NewSystemNotification(userID, title, message string) *Notification {
	return &Notification{
		UserID:  userID,
		Type:    NotificationTypeSystem,
		Title:   title,
		Message: message,
	}
}
