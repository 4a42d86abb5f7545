package domain

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// a caller cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInactiveAccount    = errors.New("account inactive")
	ErrForbidden          = errors.New("access forbidden")
	ErrTooManyAttempts    = errors.New("too many login attempts")

	// ErrChildNotFound is the single outcome for a child that does not
	// exist, is soft-deleted, or belongs to another guardian.
	ErrChildNotFound = errors.New("child not found or not authorized")
	ErrNoChanges     = errors.New("no changes applied")
	ErrOwnerNotFound = errors.New("guardian not found or not active")
)

// ValidationError reports a malformed or out-of-range input field. The
// message is static per field so nothing caller-supplied leaks back out.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
