package middleware

import "context"

// userIDKey stores the authenticated user's ID in the request context.
const userIDKey = contextKey("userID")

// privilegedKey stores the caller's elevated-authorization flag. The flag is
// computed by the external identity collaborator and carried as an opaque
// boolean; this service never derives it itself.
const privilegedKey = contextKey("privileged")

// GetUserIDFromContext retrieves the authenticated user ID from the context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// IsPrivilegedFromContext reports whether the caller holds elevated
// authorization. Absence means not privileged.
func IsPrivilegedFromContext(ctx context.Context) bool {
	privileged, ok := ctx.Value(privilegedKey).(bool)
	return ok && privileged
}
