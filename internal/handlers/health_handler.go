package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"souqly_backend/ws"
)

// HealthHandler reports process and database liveness.
type HealthHandler struct {
	sqlDB   *sql.DB
	manager *ws.Manager
	started time.Time
}

func NewHealthHandler(sqlDB *sql.DB, manager *ws.Manager) *HealthHandler {
	return &HealthHandler{
		sqlDB:   sqlDB,
		manager: manager,
		started: time.Now(),
	}
}

func (h *HealthHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
}

func (h *HealthHandler) Health(c *gin.Context) {
	overall := "ok"
	dbStatus := "ok"
	status := http.StatusOK

	if h.sqlDB != nil {
		if err := h.sqlDB.PingContext(c.Request.Context()); err != nil {
			overall = "degraded"
			dbStatus = "unreachable"
			status = http.StatusServiceUnavailable
		}
	}

	c.JSON(status, gin.H{
		"status":        overall,
		"database":      dbStatus,
		"websockets":    h.manager.ClientCount(),
		"uptimeSeconds": int64(time.Since(h.started).Seconds()),
	})
}
