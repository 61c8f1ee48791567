package api

import "context"

type ctxKey string

const requestIDKey ctxKey = "request_id"

// RequestIDHeader carries the request id on requests and responses
const RequestIDHeader = "X-Request-Id"

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
