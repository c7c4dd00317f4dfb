package constant

type contextKey string

// UserIDKey is the context key carrying the authenticated user ID set by the
// auth middleware.
const UserIDKey contextKey = "user_id"
