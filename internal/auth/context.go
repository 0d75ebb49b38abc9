package auth

import "context"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// accountIDKey is the context key for the authenticated account ID.
const accountIDKey contextKey = "account_id"

// ContextWithAccountID binds the authenticated account ID to the context.
func ContextWithAccountID(ctx context.Context, accountID string) context.Context {
	return context.WithValue(ctx, accountIDKey, accountID)
}

// AccountIDFromContext retrieves the authenticated account ID.
// Returns empty string when the request is anonymous.
func AccountIDFromContext(ctx context.Context) string {
	id, ok := ctx.Value(accountIDKey).(string)
	if !ok {
		return ""
	}
	return id
}
