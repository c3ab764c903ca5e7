// Package middleware holds the pieces shared by the framework bindings in
// middleware/echo and middleware/gin.
package middleware

import (
	"context"

	"github.com/reoring/restcodec"
)

// ctxKeyValue is a typed context key for storing a decoded T.
// Using a generic struct type ensures uniqueness per T.
type ctxKeyValue[T any] struct{}

// ContextWithValue attaches a decoded T to the context.
func ContextWithValue[T any](ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, ctxKeyValue[T]{}, v)
}

// ValueFromContext retrieves a decoded T from context.
func ValueFromContext[T any](ctx context.Context) (T, bool) {
	v, ok := ctx.Value(ctxKeyValue[T]{}).(T)
	return v, ok
}

// DefaultParseOpt returns a recommended default for HTTP JSON boundaries.
func DefaultParseOpt() restcodec.ParseOpt {
	return restcodec.ParseOpt{MaxDepth: 64, MaxBytes: 1 << 20}
}

// ErrorPayload shapes failures for JSON responses.
func ErrorPayload(failures []restcodec.Failure) map[string]any {
	if failures == nil {
		failures = []restcodec.Failure{}
	}
	return map[string]any{"failures": failures}
}

// ErrorMessage shapes a single error for JSON responses.
func ErrorMessage(err error) map[string]any {
	return map[string]any{"error": err.Error()}
}
