package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"souqly_backend/internal/validator"
	"souqly_backend/pkg/apperrors"
	"souqly_backend/pkg/contextkeys"
)

// BaseHandler bundles the request plumbing every handler needs.
type BaseHandler struct{}

// BindAndValidateJSON decodes the body and runs struct validation. It writes
// the error response itself, callers just return on false.
func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid JSON body").WithError(err))
		return false
	}
	if fieldErrs := validator.Struct(dst); fieldErrs != nil {
		apperrors.HandleError(c, apperrors.ValidationError(fieldErrs))
		return false
	}
	return true
}

// AuthenticatedUserID returns the user id placed by the auth middleware.
func (h *BaseHandler) AuthenticatedUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(contextkeys.UserIDKey.String())
	if !ok {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentication required"))
		return "", false
	}
	userID, ok := v.(string)
	if !ok || userID == "" {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentication required"))
		return "", false
	}
	return userID, true
}

// HandleServiceError forwards a service-layer error to the error writer.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	apperrors.HandleError(c, err)
}

// ParsePagination reads limit/offset query params with sane bounds.
func (h *BaseHandler) ParsePagination(c *gin.Context) (limit, offset int) {
	limit = 20
	offset = 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
