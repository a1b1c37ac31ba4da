package transport

import (
	"context"

	"github.com/jonwraymond/fetchcache/cache"
	"github.com/jonwraymond/fetchcache/gateway"
	"github.com/jonwraymond/fetchcache/resilience"
)

// Resilient runs every round trip of next through a resilience.Executor.
type Resilient struct {
	next gateway.Transport
	exec *resilience.Executor
}

// NewResilient creates a Resilient transport. A nil executor runs next
// directly.
func NewResilient(next gateway.Transport, exec *resilience.Executor) (*Resilient, error) {
	if next == nil {
		return nil, ErrNilNext
	}
	if exec == nil {
		exec = resilience.NewExecutor()
	}
	return &Resilient{next: next, exec: exec}, nil
}

// Fetch calls next under the executor's policies. The error of the last
// attempt is returned.
func (r *Resilient) Fetch(ctx context.Context, endpoint cache.Endpoint, params any) ([]byte, error) {
	var body []byte
	err := r.exec.Execute(ctx, func(ctx context.Context) error {
		b, err := r.next.Fetch(ctx, endpoint, params)
		if err != nil {
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// CircuitBreaker returns the executor's breaker, or nil.
func (r *Resilient) CircuitBreaker() *resilience.CircuitBreaker {
	return r.exec.CircuitBreaker()
}
