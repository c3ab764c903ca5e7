package httpadapter

import (
	"context"
	"log/slog"

	"github.com/reoring/restcodec/middleware"
)

// HeaderRequestID carries the request id in both directions.
const HeaderRequestID = "X-Request-Id"

// RequestID identifies a request in logs and responses.
type RequestID string

// RequestIDFromContext returns the id assigned by the handler.
func RequestIDFromContext(ctx context.Context) (RequestID, bool) {
	return middleware.ValueFromContext[RequestID](ctx)
}

// LoggerFromContext returns the request-scoped logger, or slog.Default().
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if l, ok := middleware.ValueFromContext[*slog.Logger](ctx); ok && l != nil {
		return l
	}
	return slog.Default()
}
