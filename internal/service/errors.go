package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is returned by Login for an unknown username or
	// a wrong password. The two cases are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrHashingPassword     = errors.New("hashing password failed")
	ErrVerifyingPassword   = errors.New("verifying password failed")
	ErrTokenCreationFailed = errors.New("token creation failed")

	ErrMalformedStoredPassword = errors.New("configured password hash is malformed")
	ErrVersionIsNotSpecified   = errors.New("app version is not specified")
)
