package approvals

import (
	"errors"

	"github.com/jonwraymond/fetchcache/resilience"
)

var (
	// ErrInvalidParams is returned for missing or malformed params.
	ErrInvalidParams = errors.New("approvals: invalid params")

	// ErrNotFound is returned when a transaction id is unknown.
	ErrNotFound = errors.New("approvals: not found")

	// ErrUnknownEndpoint is returned for endpoints the backend does not serve.
	ErrUnknownEndpoint = errors.New("approvals: unknown endpoint")

	// ErrUnavailable is the failure injected by Backend.FailNext.
	ErrUnavailable = errors.New("approvals: backend unavailable")
)

// Retryable reports whether a Backend error is transient. Rejected requests
// (bad params, unknown ids or endpoints) fail the same way on every attempt
// and say nothing about the backend's health; everything else falls back to
// resilience.Retryable.
func Retryable(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidParams),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrUnknownEndpoint):
		return false
	}
	return resilience.Retryable(err)
}
