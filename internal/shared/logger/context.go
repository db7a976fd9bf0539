package logger

import "context"

type ctxKey int

const (
	requestIDKey ctxKey = iota
	actorIDKey
)

// ContextWithRequestID stores the request correlation id for WithContext.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// ContextWithActor stores the authenticated employee for WithContext.
func ContextWithActor(ctx context.Context, employeeID uint) context.Context {
	return context.WithValue(ctx, actorIDKey, employeeID)
}

func contextAttrs(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	var attrs []any
	if id, ok := ctx.Value(requestIDKey).(string); ok && id != "" {
		attrs = append(attrs, "request_id", id)
	}
	if id, ok := ctx.Value(actorIDKey).(uint); ok && id != 0 {
		attrs = append(attrs, "actor_id", id)
	}
	return attrs
}
