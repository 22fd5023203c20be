package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidSchema indicates the schema file could not be parsed.
	// Schema load failures are fatal; no partial schema is ever used.
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrMissingIdentifier indicates the row source has no identifier
	// column at all, so rows cannot be grouped into documents.
	ErrMissingIdentifier = errors.New("identifier column missing from source")

	// ErrUnsupportedBackend indicates an unknown document store backend.
	ErrUnsupportedBackend = errors.New("unsupported store backend")
)
