package domain

import "errors"

// Sentinel errors for portal operations. The web layer is the single place
// that converts these into HTTP status codes.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	// HTTP Status: 404 Not Found
	ErrUserNotFound = errors.New("user not found")

	// ErrServiceNotFound indicates the requested catalog service does not exist.
	// HTTP Status: 404 Not Found
	ErrServiceNotFound = errors.New("service not found")

	// ErrEmailTaken indicates the signup email is already registered.
	// HTTP Status: 400 Bad Request
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials indicates a failed login. The message is shared
	// between unknown-email and wrong-password so callers cannot tell which.
	// HTTP Status: 401 Unauthorized
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthorized indicates a missing, malformed, or unverifiable token.
	// HTTP Status: 401 Unauthorized
	ErrUnauthorized = errors.New("authentication required")
)
