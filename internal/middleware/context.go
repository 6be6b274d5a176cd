package middleware

// Context keys for the authentication and tracing metadata the campaign API
// attaches to each request.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"
)
