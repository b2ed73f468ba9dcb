package dto

import (
	"time"

	"souqly_backend/internal/models"
)

type CreateConversationRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	SellerID  string `json:"sellerId" validate:"required,uuid"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=4000"`
}

// ConversationResponse is one row of the inbox listing, annotated with the
// counterpart, the last message and the unread counter.
type ConversationResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"productId"`
	BuyerID       string          `json:"buyerId"`
	SellerID      string          `json:"sellerId"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastMessageAt *time.Time      `json:"lastMessageAt,omitempty"`
	Product       *models.Product `json:"product,omitempty"`
	OtherUser     *models.User    `json:"otherUser,omitempty"`
	LastMessage   *models.Message `json:"lastMessage,omitempty"`
	UnreadCount   int64           `json:"unreadCount"`
	IsBuyer       bool            `json:"isBuyer"`
}

// NewMessagePush is the websocket frame sent to the receiver of a message.
type NewMessagePush struct {
	Type           string          `json:"type"`
	ConversationID string          `json:"conversationId"`
	Message        *models.Message `json:"message"`
}
