package crypto

import "errors"

// Sentinel errors returned by the password hasher. Callers can match them
// with [errors.Is].
var (
	// ErrEmptyPassword is returned by Hash when the password is empty.
	ErrEmptyPassword = errors.New("password must be a non-empty string")

	// ErrInvalidIterations is returned by Hash for a non-positive
	// iteration count.
	ErrInvalidIterations = errors.New("iteration count must be positive")

	// ErrSaltGeneration is returned when the random source fails.
	ErrSaltGeneration = errors.New("failed to generate salt")

	// ErrMalformedCredential is returned by ParseCredential for strings that
	// are not "<iterations>:<saltHex>:<keyHex>".
	ErrMalformedCredential = errors.New("malformed stored credential")
)
