package handlers

import (
	"database/sql"

	"souqly_backend/internal/services"
	"souqly_backend/ws"
)

// AppHandlers groups every HTTP handler for route registration.
type AppHandlers struct {
	Conversations *ConversationHandler
	Notifications *NotificationHandler
	Products      *ProductHandler
	Health        *HealthHandler
	WebSocket     *ws.Handler
}

func NewAppHandlers(sc *services.ServiceContainer, sqlDB *sql.DB, wsSendBuffer int) *AppHandlers {
	return &AppHandlers{
		Conversations: NewConversationHandler(sc.Messaging),
		Notifications: NewNotificationHandler(sc.Notifications),
		Products:      NewProductHandler(sc.Promotions),
		Health:        NewHealthHandler(sqlDB, sc.WSManager),
		WebSocket:     ws.NewHandler(sc.WSManager, sc.Users, wsSendBuffer),
	}
}
