package slogx

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

func FromContext(ctx context.Context) *slog.Logger {
	l, ok := ctx.Value(ctxKey{}).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return l
}

func WithRequestID(ctx context.Context, reqID string) context.Context {
	l := FromContext(ctx)
	return WithContext(ctx, l.With("req_id", reqID))
}

// WithConversation tags the context logger with a chat conversation and the
// update being processed for it.
func WithConversation(ctx context.Context, base *slog.Logger, chatID int64, updateID int) context.Context {
	if base == nil {
		base = FromContext(ctx)
	}
	return WithContext(ctx, base.With(
		slog.Int64("chat_id", chatID),
		slog.Int("update_id", updateID),
	))
}
