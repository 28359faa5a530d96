package middleware

// ContextKey is a type for Locals keys to avoid collisions.
type ContextKey string

// Constants for middleware keys and values
const (
	// --- Logger / Request ID Keys ---
	RequestLoggerKey ContextKey = "requestLogger"
	RequestIDKey     ContextKey = "requestID"
	RequestIDHeader             = "X-Request-ID"

	// --- JWT Guard Keys ---
	AuthorizationHeader            = "Authorization"
	BearerPrefix                   = "Bearer "
	UserIDKey           ContextKey = "userID"
	UsernameKey         ContextKey = "username"

	// --- DB Session Key ---
	DBConnKey ContextKey = "dbConn"
)
