package auth

import "context"

type contextKey string

const userIDKey contextKey = "user_id"

// ContextWithUserID records the verified Firebase UID of the caller.
func ContextWithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, userIDKey, uid)
}

// UserIDFromContext returns the caller's UID, or "" for guests.
func UserIDFromContext(ctx context.Context) string {
	if uid, ok := ctx.Value(userIDKey).(string); ok {
		return uid
	}
	return ""
}
