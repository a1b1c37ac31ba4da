package transport

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonwraymond/fetchcache/resilience"
)

// Sentinel errors for transport construction.
var (
	ErrMissingBaseURL = errors.New("transport: base URL is required")
	ErrNilNext        = errors.New("transport: next transport is nil")
)

// StatusError is returned when the remote answers with a non-2xx status.
type StatusError struct {
	Endpoint string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("transport: %s: %d %s", e.Endpoint, e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("transport: %s: %d %s: %s", e.Endpoint, e.Code, http.StatusText(e.Code), e.Body)
}

// Temporary reports whether the status is worth retrying.
func (e *StatusError) Temporary() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// Retryable extends resilience.Retryable: status errors are retried only
// when Temporary.
func Retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	return resilience.Retryable(err)
}
