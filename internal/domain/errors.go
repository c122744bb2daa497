package domain

import "errors"

// Domain errors
var (
	// Auth errors
	ErrEmailTaken          = errors.New("user with this email already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	ErrRefreshNotFound     = errors.New("refresh token not found")
	ErrRefreshExpired      = errors.New("refresh token has expired")
	ErrUserNotFound        = errors.New("user not found")

	// Task errors
	ErrTaskNotFound  = errors.New("task not found")
	ErrTaskForbidden = errors.New("you do not have access to this task")
)

// ValidationError carries the first failing validator message for a request.
// Handlers map it to 400 and surface the message verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation wraps a validator message into an error.
func Validation(message string) error {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
