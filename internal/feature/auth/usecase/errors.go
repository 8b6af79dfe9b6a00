// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by username.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUsername is returned when attempting to create a user with
	// a username that is already taken.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrInvalidCredentials is returned for every authentication failure.
	// It is deliberately generic: a missing user and a wrong password are
	// indistinguishable to the caller, so usernames cannot be enumerated.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrRegistrationFailed wraps store failures during registration.
	// The cause is logged server-side; users only see a generic message.
	ErrRegistrationFailed = errors.New("registration failed")
)

// ValidationError reports a user-correctable problem with the submitted
// registration form. Its message is safe to show to the user.
type ValidationError struct {
	Message string
}

// Error returns the user-facing validation message.
func (e *ValidationError) Error() string {
	return e.Message
}
