package store

import "errors"

// Sentinel errors returned by audit sinks. Callers should use [errors.Is]
// to match against these values.
var (
	// ErrSinkClosed is returned when appending to a sink after Close.
	ErrSinkClosed = errors.New("audit sink is closed")

	// ErrEncodingEntry is returned when an entry cannot be serialized.
	ErrEncodingEntry = errors.New("error encoding audit entry")

	// ErrWritingEntry is returned when the serialized entry cannot be
	// appended to the backing file.
	ErrWritingEntry = errors.New("error writing audit entry")

	// ErrUnsupportedDriver is returned by NewAuditStorage for unknown
	// storage drivers.
	ErrUnsupportedDriver = errors.New("unsupported storage driver")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingStatement is returned when executing an INSERT fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrEntryNotSaved is returned when an INSERT completes without error
	// but affects no rows.
	ErrEntryNotSaved = errors.New("audit entry was not saved")
)
