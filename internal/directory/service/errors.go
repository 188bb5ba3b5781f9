package service

import "errors"

var (
	ErrInvalidRegistration = errors.New("username, email and password are required")
	ErrBusinessNotFound    = errors.New("business not found")
	ErrUserNotFound        = errors.New("user not found")
)

// ConflictError rejects a registration whose username or email is already
// registered. Reason is safe to show to the caller.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

// AuthError rejects a login. Every cause shares the same Reason so callers
// cannot tell an unknown account from a wrong password.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string { return e.Reason }

var (
	ErrUsernameTaken = &ConflictError{Reason: "username taken"}
	ErrEmailTaken    = &ConflictError{Reason: "email taken"}

	ErrInvalidCredentials = &AuthError{Reason: "invalid credentials"}
)

// AuthObserver receives the outcome of every register and login attempt.
type AuthObserver interface {
	ObserveAuth(operation, outcome string)
}

// FavoriteObserver receives every favorite that was actually added or removed.
type FavoriteObserver interface {
	ObserveFavorite(action string)
}
