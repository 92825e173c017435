// Package service holds the auth and task use cases.  Errors leaving this
// package belong to a small taxonomy that the HTTP layer maps onto status
// codes; callers match them with errors.Is.
package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks user-correctable input problems.  Concrete
	// failures are *ValidationError values.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned when the email is already registered.
	ErrConflict = errors.New("user already exists")

	// ErrAuth groups every authentication failure.
	ErrAuth = errors.New("authentication failed")

	// ErrInvalidCredentials is the single login failure for both an unknown
	// email and a wrong password.
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrAuth)

	// ErrNotAuthenticated is returned when no valid session is present.
	ErrNotAuthenticated = fmt.Errorf("%w: not authenticated", ErrAuth)

	// ErrNotFound is returned for tasks that are absent or not owned.
	ErrNotFound = errors.New("task not found")

	// ErrOperation wraps hashing and persistence malfunctions.  Its text
	// must not be shown to clients.
	ErrOperation = errors.New("operation failed")
)

// ValidationError carries a message that is safe to show to the user.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(msg string) error { return &ValidationError{Msg: msg} }

// operationFailed wraps an infrastructure error into ErrOperation while
// keeping the cause for logs.
func operationFailed(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrOperation, op, err)
}
