package transport

import (
	"context"
)

type (
	contextKey string
)

const (
	ContextAuthKey       contextKey = "auth"
	ContextRetryOn401Key contextKey = "retryOn401"
)

// WithAuth controls whether the bearer token is attached, default true
func WithAuth(ctx context.Context, auth bool) context.Context {
	return context.WithValue(ctx, ContextAuthKey, auth)
}

// WithRetryOn401 controls whether a 401 triggers refresh-and-retry, default true
func WithRetryOn401(ctx context.Context, retry bool) context.Context {
	return context.WithValue(ctx, ContextRetryOn401Key, retry)
}

func flag(ctx context.Context, key contextKey) bool {
	if value := ctx.Value(key); value != nil {
		if b, ok := value.(bool); ok {
			return b
		}
	}
	return true
}

func useAuth(ctx context.Context) bool {
	return flag(ctx, ContextAuthKey)
}

func retryOn401(ctx context.Context) bool {
	return flag(ctx, ContextRetryOn401Key)
}
