// Package service provides business logic for the application.
package service

import "errors"

// Service errors shared across services. Handlers map these to
// HTTP status codes; messages are safe to return to clients.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrLawyerNotFound     = errors.New("lawyer not found")
	ErrAlreadyAdded       = errors.New("lawyer already in collection")
	ErrEntryNotFound      = errors.New("lawyer not in collection")
	ErrComparisonFull     = errors.New("comparison is limited to 3 lawyers")
	ErrWebhookNotFound    = errors.New("webhook not found")
)

// ValidationError reports rejected client input. The message is
// client-facing.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// Validation builds a ValidationError with the given message.
func Validation(msg string) error {
	return &ValidationError{msg: msg}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
