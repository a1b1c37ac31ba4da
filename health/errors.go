package health

import "errors"

var (
	// ErrCheckTimeout is reported when a checker outlives the aggregator's
	// per-check deadline.
	ErrCheckTimeout = errors.New("health: check exceeded its deadline")

	// ErrCheckerNotFound is returned by Aggregator.Check for a name that was
	// never registered.
	ErrCheckerNotFound = errors.New("health: no checker registered under that name")
)
