package logger

import (
	"context"
	"log/slog"

	"souqly_backend/pkg/contextkeys"
)

// WithContext stores a request-scoped logger in the context.
func WithContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, contextkeys.LoggerKey, l)
}

// FromContext returns the request-scoped logger, falling back to the base
// logger when none was attached.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(contextkeys.LoggerKey).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return L()
}

func CtxDebug(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Debug(msg, args...)
}

func CtxInfo(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Info(msg, args...)
}

func CtxWarn(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Warn(msg, args...)
}

func CtxError(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Error(msg, args...)
}

// CtxWithError logs an error message with the cause attached.
func CtxWithError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := append([]any{slog.Any("error", err)}, args...)
	FromContext(ctx).Error(msg, allArgs...)
}
