package mask

import "errors"

var (
	// ErrInvalidJSON is returned by [Parse] when the input is not a single
	// well-formed JSON document.
	ErrInvalidJSON = errors.New("invalid JSON document")

	// ErrTrailingData is returned by [Parse] when data follows the first
	// JSON document.
	ErrTrailingData = errors.New("unexpected data after JSON document")

	// ErrTooDeep is returned by [Parse] when containers are nested deeper
	// than the decoder accepts.
	ErrTooDeep = errors.New("JSON document nested too deeply")

	// ErrUnknownKind is returned when marshaling a Value with a corrupt tag.
	ErrUnknownKind = errors.New("unknown value kind")
)
