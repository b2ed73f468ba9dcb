package apperrors

import (
	"net/http"
)

/*
Factories and predefined variables for the marketplace domain errors.
Repository sentinel errors get translated into these at the service layer.
*/

// ErrNotFound converts a repository not-found error into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the generic 409 factory.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation is the generic 400 factory for business-rule violations.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// --- Messaging ---

// ErrConversationNotFound - the conversation id does not exist.
var ErrConversationNotFound = New(
	CodeNotFound,
	"messaging",
	"Conversation not found",
	http.StatusNotFound,
)

// ErrConversationAccessDenied - the requester is not a party to the conversation.
var ErrConversationAccessDenied = New(
	CodeForbidden,
	"messaging",
	"Access to conversation denied",
	http.StatusForbidden,
)

// ErrSelfConversation - a user cannot open a thread with themselves.
var ErrSelfConversation = New(
	CodeInvalidOperation,
	"messaging",
	"Cannot start a conversation with yourself",
	http.StatusBadRequest,
)

// ErrEmptyMessage - message content is required.
var ErrEmptyMessage = New(
	CodeValidationFailed,
	"messaging",
	"Message content cannot be empty",
	http.StatusBadRequest,
)

// --- Notifications ---

// ErrNotificationNotFound - also returned when the row belongs to another
// user, so foreign notifications are indistinguishable from missing ones.
var ErrNotificationNotFound = New(
	CodeNotFound,
	"notification",
	"Notification not found",
	http.StatusNotFound,
)

// ErrInvalidNotificationType - the type is outside the fixed enumeration.
var ErrInvalidNotificationType = New(
	CodeValidationFailed,
	"notification",
	"Invalid notification type",
	http.StatusBadRequest,
)

// --- Products & likes ---

// ErrProductNotFound - unknown product id.
var ErrProductNotFound = New(
	CodeNotFound,
	"product",
	"Product not found",
	http.StatusNotFound,
)

// ErrAlreadyLiked - the (product, user) like pair already exists. The message
// is user-facing, matching the client copy.
var ErrAlreadyLiked = New(
	CodeAlreadyExists,
	"promotion",
	"Vous avez déjà aimé ce produit",
	http.StatusConflict,
)

// ErrNotProductSeller - the seller id does not own the product.
var ErrNotProductSeller = New(
	CodeInvalidOperation,
	"messaging",
	"Seller does not own this product",
	http.StatusBadRequest,
)

// --- Auth & users ---

// ErrUserNotFound - unknown user id.
var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"User not found",
	http.StatusNotFound,
)

// ErrInvalidToken - invalid or expired access token.
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)
