// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values. Middleware sets them, services read them, and the
// package stays free of net/http so services can import it cheaply.
package requestcontext

import (
	"context"
	"time"
)

type (
	requestIDKey   struct{}
	requestTimeKey struct{}
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID returns the request ID set by middleware, or "" when absent.
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}

// Now returns the request time when middleware pinned one, else time.Now().
// Tests inject a fixed time with WithTime.
func Now(ctx context.Context) time.Time {
	if v, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return v
	}
	return time.Now()
}
