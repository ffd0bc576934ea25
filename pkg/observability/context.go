package observability

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	correlationIDCtxKey contextKey = "correlation_id"
	profileCtxKey       contextKey = "profile"
	operationCtxKey     contextKey = "operation"
)

// Attribute keys shared by logs and metric tags.
const (
	CorrelationIDKey = "correlation_id"
	ProfileKey       = "profile"
	OperationKey     = "operation"
	DurationKey      = "duration_ms"
	ErrorKey         = "error"
)

// WithCorrelationID stores a correlation ID in ctx, generating one when id is
// empty.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = uuid.NewString()
	}
	return context.WithValue(ctx, correlationIDCtxKey, id)
}

// CorrelationIDFromContext returns the correlation ID, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	return stringValue(ctx, correlationIDCtxKey)
}

// WithProfile stores the active study profile name in ctx.
func WithProfile(ctx context.Context, profile string) context.Context {
	return context.WithValue(ctx, profileCtxKey, profile)
}

// ProfileFromContext returns the study profile, or "".
func ProfileFromContext(ctx context.Context) string {
	return stringValue(ctx, profileCtxKey)
}

// WithOperation stores an operation name in ctx.
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, operationCtxKey, operation)
}

// OperationFromContext returns the operation name, or "".
func OperationFromContext(ctx context.Context) string {
	return stringValue(ctx, operationCtxKey)
}

// NewCommandContext prepares ctx for one CLI or tool invocation.
func NewCommandContext(ctx context.Context, profile, operation string) context.Context {
	ctx = WithCorrelationID(ctx, "")
	if profile != "" {
		ctx = WithProfile(ctx, profile)
	}
	if operation != "" {
		ctx = WithOperation(ctx, operation)
	}
	return ctx
}

func stringValue(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
