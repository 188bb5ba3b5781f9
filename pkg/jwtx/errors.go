package jwtx

import (
	"errors"
	"fmt"
)

var (
	// ErrWeakSecret is wrapped by every ConfigurationError caused by the
	// signing secret.
	ErrWeakSecret = errors.New("jwtx: weak signing secret")

	// ErrInvalidTTL reports a zero or negative token lifetime.
	ErrInvalidTTL = errors.New("jwtx: token lifetime must be positive")

	// ErrParse is returned by SubjectOf for any token that does not verify or
	// whose subject is not a valid ID.
	ErrParse = errors.New("jwtx: cannot parse token")
)

// ConfigurationError means the codec was handed configuration it refuses to
// run with. It is a startup failure, never a per-request one.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("jwtx: invalid configuration: %s", e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }
