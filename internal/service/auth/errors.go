package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken covers every token verification failure. The cause is
	// logged at debug level but never surfaces to callers.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrMissingToken indicates a token was expected but not provided.
	ErrMissingToken = errors.New("authentication token is missing")
)
