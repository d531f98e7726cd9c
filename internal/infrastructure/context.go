package infrastructure

import (
	"context"

	"github.com/google/uuid"
)

// GenerateTraceID creates a new unique trace ID using UUID v4
func GenerateTraceID() string {
	return uuid.New().String()
}

// ContextWithTraceID creates a new context with a generated trace ID
func ContextWithTraceID(ctx context.Context) context.Context {
	return WithTraceID(ctx, GenerateTraceID())
}

// EnsureTraceID ensures the context has a trace ID. An active span's trace
// ID is reused so log lines and spans correlate; otherwise one is generated.
func EnsureTraceID(ctx context.Context) context.Context {
	if GetTraceID(ctx) != "" {
		return ctx
	}
	if spanTraceID := TraceIDFromContext(ctx); spanTraceID != "" {
		return WithTraceID(ctx, spanTraceID)
	}
	return ContextWithTraceID(ctx)
}
