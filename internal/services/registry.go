package services

import (
	"gorm.io/gorm"

	"souqly_backend/internal/config"
	"souqly_backend/internal/repositories"
	"souqly_backend/ws"
)

// ServiceContainer wires repositories and services together and is handed to
// the handler layer as a single unit.
type ServiceContainer struct {
	Users         repositories.UserRepository
	Messaging     MessagingService
	Notifications NotificationService
	Promotions    PromotionService
	Notifier      Notifier
	WSManager     *ws.Manager
}

// NewServiceContainer builds the full dependency graph on top of a database
// handle and a running websocket manager.
func NewServiceContainer(db *gorm.DB, manager *ws.Manager, cfg *config.Config) *ServiceContainer {
	userRepo := repositories.NewUserRepository(db)
	convRepo := repositories.NewConversationRepository(db)
	msgRepo := repositories.NewMessageRepository(db)
	notifRepo := repositories.NewNotificationRepository(db)
	productRepo := repositories.NewProductRepository(db)

	notifier := NewNotifier(notifRepo, manager)

	return &ServiceContainer{
		Users:         userRepo,
		Messaging:     NewMessagingService(convRepo, msgRepo, productRepo, userRepo, notifier),
		Notifications: NewNotificationService(notifRepo),
		Promotions:    NewPromotionService(productRepo, notifier, cfg.Promotion.LikeThreshold),
		Notifier:      notifier,
		WSManager:     manager,
	}
}
