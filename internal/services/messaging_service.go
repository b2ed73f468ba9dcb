package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"souqly_backend/internal/logger"
	"souqly_backend/internal/models"
	"souqly_backend/internal/repositories"
	"souqly_backend/internal/services/dto"
	"souqly_backend/pkg/apperrors"
)

// MessagingService owns conversations and chat messages.
type MessagingService interface {
	// StartConversation is idempotent per (product, buyer, seller) triple.
	// The bool reports whether a new thread was created.
	StartConversation(ctx context.Context, buyerID string, req dto.CreateConversationRequest) (*models.Conversation, bool, error)
	GetConversations(ctx context.Context, userID string) ([]dto.ConversationResponse, error)
	// FetchAndMarkRead returns the full history of a conversation and, as a
	// side effect, marks every message addressed to the caller as read.
	FetchAndMarkRead(ctx context.Context, conversationID, userID string) ([]models.Message, error)
	SendMessage(ctx context.Context, conversationID, senderID string, req dto.SendMessageRequest) (*models.Message, error)
}

type messagingService struct {
	conversations repositories.ConversationRepository
	messages      repositories.MessageRepository
	products      repositories.ProductRepository
	users         repositories.UserRepository
	notifier      Notifier
}

func NewMessagingService(
	conversations repositories.ConversationRepository,
	messages repositories.MessageRepository,
	products repositories.ProductRepository,
	users repositories.UserRepository,
	notifier Notifier,
) MessagingService {
	return &messagingService{
		conversations: conversations,
		messages:      messages,
		products:      products,
		users:         users,
		notifier:      notifier,
	}
}

func (s *messagingService) StartConversation(ctx context.Context, buyerID string, req dto.CreateConversationRequest) (*models.Conversation, bool, error) {
	if buyerID == req.SellerID {
		return nil, false, apperrors.ErrSelfConversation
	}

	product, err := s.products.GetByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, false, apperrors.ErrProductNotFound
		}
		return nil, false, apperrors.InternalError(err)
	}
	if product.SellerID != req.SellerID {
		return nil, false, apperrors.ErrNotProductSeller
	}

	conv, created, err := s.conversations.GetOrCreate(ctx, req.ProductID, buyerID, req.SellerID)
	if err != nil {
		return nil, false, apperrors.InternalError(err)
	}
	if created {
		logger.CtxInfo(ctx, "conversation created",
			"conversation_id", conv.ID, "product_id", req.ProductID, "buyer_id", buyerID)
	}
	return conv, created, nil
}

func (s *messagingService) GetConversations(ctx context.Context, userID string) ([]dto.ConversationResponse, error) {
	convs, err := s.conversations.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.ConversationResponse, 0, len(convs))
	for i := range convs {
		conv := &convs[i]

		resp := dto.ConversationResponse{
			ID:            conv.ID,
			ProductID:     conv.ProductID,
			BuyerID:       conv.BuyerID,
			SellerID:      conv.SellerID,
			CreatedAt:     conv.CreatedAt,
			LastMessageAt: conv.LastMessageAt,
			Product:       conv.Product,
		}

		resp.IsBuyer = conv.BuyerID == userID
		if resp.IsBuyer {
			resp.OtherUser = conv.Seller
		} else {
			resp.OtherUser = conv.Buyer
		}

		last, err := s.messages.LastInConversation(ctx, conv.ID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.InternalError(err)
		}
		resp.LastMessage = last

		unread, err := s.messages.CountUnreadInConversation(ctx, conv.ID, userID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		resp.UnreadCount = unread

		out = append(out, resp)
	}
	return out, nil
}

func (s *messagingService) FetchAndMarkRead(ctx context.Context, conversationID, userID string) ([]models.Message, error) {
	conv, err := s.authorizeParticipant(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}

	msgs, err := s.messages.ListByConversation(ctx, conv.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	marked, err := s.messages.MarkReadForReceiver(ctx, conv.ID, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if marked > 0 {
		// Reflect the flip in the slice we already fetched so the caller
		// sees the post-read state without a second query.
		for i := range msgs {
			if msgs[i].ReceiverID == userID {
				msgs[i].IsRead = true
			}
		}
	}
	return msgs, nil
}

func (s *messagingService) SendMessage(ctx context.Context, conversationID, senderID string, req dto.SendMessageRequest) (*models.Message, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperrors.ErrEmptyMessage
	}

	conv, err := s.authorizeParticipant(ctx, conversationID, senderID)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		ReceiverID:     conv.OtherParty(senderID),
		Content:        req.Content,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, apperrors.InternalError(err)
	}

	now := time.Now()
	if err := s.conversations.TouchLastMessage(ctx, conv.ID, now); err != nil {
		logger.CtxWithError(ctx, "failed to bump conversation timestamp", err,
			"conversation_id", conv.ID)
	}

	sender, err := s.users.GetByID(ctx, senderID)
	if err != nil {
		logger.CtxWithError(ctx, "sender lookup failed, skipping notification", err,
			"sender_id", senderID)
		return msg, nil
	}
	s.notifier.NotifyNewMessage(ctx, msg, sender)

	return msg, nil
}

func (s *messagingService) authorizeParticipant(ctx context.Context, conversationID, userID string) (*models.Conversation, error) {
	conv, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrConversationNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if !conv.HasParticipant(userID) {
		return nil, apperrors.ErrConversationAccessDenied
	}
	return conv, nil
}
