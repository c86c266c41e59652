package analytics

import "errors"

var (
	// ErrAnalyticsRepositoryRequired is returned when a Tracker is created
	// without a repository.
	ErrAnalyticsRepositoryRequired = errors.New("analytics repository is required")

	// ErrTrackerReleased is returned when tracking is attempted after Release.
	ErrTrackerReleased = errors.New("tracker has been released")
)
