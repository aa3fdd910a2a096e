package auth

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is the root of every authentication failure. Handlers map
// it to a generic 401 and never reveal which wrapped cause occurred.
var ErrUnauthorized = errors.New("unauthorized")

var (
	// ErrMissingCredential is returned when the request carries no token.
	ErrMissingCredential = fmt.Errorf("missing credential: %w", ErrUnauthorized)
	// ErrInvalidCredential is returned for a wrong static secret or a token
	// with a bad signature, algorithm, issuer or shape.
	ErrInvalidCredential = fmt.Errorf("invalid credential: %w", ErrUnauthorized)
	// ErrExpiredCredential is returned for a signed token past its expiry.
	ErrExpiredCredential = fmt.Errorf("expired credential: %w", ErrUnauthorized)
)

var (
	// ErrEmptySecret is returned by constructors given an empty secret.
	ErrEmptySecret = errors.New("auth secret must not be empty")
	// ErrEmptySubject is returned by Issue when no username is given.
	ErrEmptySubject = errors.New("token subject must not be empty")
	// ErrUnknownStrategy is returned by NewStrategy for unsupported names.
	ErrUnknownStrategy = errors.New("unknown auth strategy")
)
