package logging

import "context"

type contextKey string

const profileIDKey contextKey = "profile_id"

// WithProfileID adds a profile ID to the context.
func WithProfileID(ctx context.Context, profileID string) context.Context {
	return context.WithValue(ctx, profileIDKey, profileID)
}

// GetProfileID retrieves the profile ID from the context.
// Returns empty string if not present.
func GetProfileID(ctx context.Context) string {
	if id, ok := ctx.Value(profileIDKey).(string); ok {
		return id
	}
	return ""
}
