package datafix

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrCatalogRepositoryRequired is returned when a catalog repository is not provided.
	ErrCatalogRepositoryRequired = errors.New("catalog repository required")

	// ErrMalformedFixFile is returned when a fix file cannot be parsed.
	ErrMalformedFixFile = errors.New("malformed fix file")

	// ErrNoFixes is returned when a fix file contains no entries.
	ErrNoFixes = errors.New("fix file contains no entries")
)
