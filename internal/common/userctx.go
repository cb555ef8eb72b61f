package common

import "context"

// UserContext holds the authenticated caller's identity resolved by the
// bearer-token middleware. Absent (nil) means an unauthenticated request.
type UserContext struct {
	UserID string
	Email  string
	Role   string
}

type contextKey int

const (
	userContextKey contextKey = iota
	correlationIDKey
)

// WithUserContext stores a UserContext in the request context.
func WithUserContext(ctx context.Context, uc *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, uc)
}

// UserContextFromContext retrieves the UserContext from context, or nil if absent.
func UserContextFromContext(ctx context.Context) *UserContext {
	uc, _ := ctx.Value(userContextKey).(*UserContext)
	return uc
}

// ResolveUserID returns the UserID from context, or "" when no user context
// is present. Callers treat "" as an unauthenticated request.
func ResolveUserID(ctx context.Context) string {
	if uc := UserContextFromContext(ctx); uc != nil {
		return uc.UserID
	}
	return ""
}

// IsAdmin reports whether the context carries an admin identity.
func IsAdmin(ctx context.Context) bool {
	uc := UserContextFromContext(ctx)
	return uc != nil && uc.Role == "admin"
}

// WithCorrelationID stores a request correlation ID in context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// CorrelationIDFromContext retrieves the correlation ID, or "" if absent.
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}
