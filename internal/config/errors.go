package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, an unknown auth strategy or a missing signing key).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidServerConfigs indicates invalid server settings
	// (for example, a negative timeout).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidStorageConfigs indicates invalid audit sink settings
	// (for example, a SQL driver without a DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
)

// ErrInvalidAddress is returned by [NetAddress.Set] for values that are not
// a valid host:port pair.
var ErrInvalidAddress = errors.New("need address in a form `host:port`")
