package middleware

import (
	"context"

	"github.com/amirhosseinghanipour/userorg/internal/domain"
)

type contextKey string

const userIDContextKey contextKey = "user_id"

// WithUserID injects the authenticated caller into the context.
func WithUserID(ctx context.Context, userID domain.UserID) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext returns the authenticated caller, if any.
func UserIDFromContext(ctx context.Context) (domain.UserID, bool) {
	id, ok := ctx.Value(userIDContextKey).(domain.UserID)
	return id, ok
}
