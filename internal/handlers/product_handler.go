package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"souqly_backend/internal/services"
)

// ProductHandler exposes the like and promotion endpoints.
type ProductHandler struct {
	BaseHandler
	promotions services.PromotionService
}

func NewProductHandler(promotions services.PromotionService) *ProductHandler {
	return &ProductHandler{promotions: promotions}
}

// RegisterRoutes mounts the authenticated endpoints.
func (h *ProductHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/products/:productId/like", h.Like)
	r.GET("/products/:productId/like-status", h.LikeStatus)
}

// RegisterPublicRoutes mounts the endpoints that need no authentication.
func (h *ProductHandler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/products/promoted", h.Promoted)
}

func (h *ProductHandler) Like(c *gin.Context) {
	userID, ok := h.AuthenticatedUserID(c)
	if !ok {
		return
	}

	result, err := h.promotions.AddLike(c.Request.Context(), c.Param("productId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ProductHandler) LikeStatus(c *gin.Context) {
	userID, ok := h.AuthenticatedUserID(c)
	if !ok {
		return
	}

	status, err := h.promotions.LikeStatus(c.Request.Context(), c.Param("productId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *ProductHandler) Promoted(c *gin.Context) {
	limit, offset := h.ParsePagination(c)

	list, err := h.promotions.PromotedProducts(c.Request.Context(), limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": list})
}
