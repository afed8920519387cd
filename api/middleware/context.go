package middleware

import "context"

type contextKey string

const (
	ctxUserID    contextKey = "user_id"
	ctxProfileID contextKey = "profile_id"
	ctxHandle    contextKey = "handle"
	ctxAccessID  contextKey = "access_id"
)

func UserIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxUserID)
}

func ProfileIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxProfileID)
}

func HandleFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxHandle)
}

// AccessIDFromContext returns the jti of the bearer token, used to revoke
// the session on logout.
func AccessIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, ctxAccessID)
}

// WithUserID injects the user identifier into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

// WithProfileID injects the profile identifier into the context.
func WithProfileID(ctx context.Context, profileID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxProfileID, profileID)
}

func stringFromContext(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
