package ingestion

import "errors"

var (
	// ErrCatalogRepositoryRequired is returned when a catalog repository is not provided.
	ErrCatalogRepositoryRequired = errors.New("catalog repository required")

	// ErrMalformedRoster is returned when a roster file cannot be parsed.
	ErrMalformedRoster = errors.New("malformed roster")

	// ErrEmptyRoster is returned when a roster contains no departments.
	ErrEmptyRoster = errors.New("roster contains no departments")
)
