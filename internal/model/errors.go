package model

import "errors"

var (
	// ErrNotFound is returned by stores when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateName is returned when an account name is already taken.
	ErrDuplicateName = errors.New("account name already taken")
	// ErrNotAuthorized is returned when the acting account does not own the resource.
	ErrNotAuthorized = errors.New("not authorized")
	// ErrAuthenticationRequired is returned when an action needs a signed-in account.
	ErrAuthenticationRequired = errors.New("authentication required")
	// ErrAlreadyAuthenticated is returned when an anonymous-only action is attempted
	// by a signed-in account.
	ErrAlreadyAuthenticated = errors.New("already authenticated")
)

// ValidationError describes a user-correctable input violation. The message is
// meant to be shown to the user verbatim.
type ValidationError struct {
	Message string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
