package health

import (
	"context"

	"github.com/jonwraymond/fetchcache/resilience"
)

// CircuitChecker reports a circuit breaker's state: closed is healthy,
// half-open degraded, open unhealthy.
type CircuitChecker struct {
	name string
	cb   *resilience.CircuitBreaker
}

// NewCircuitChecker creates a CircuitChecker.
func NewCircuitChecker(name string, cb *resilience.CircuitBreaker) *CircuitChecker {
	return &CircuitChecker{name: name, cb: cb}
}

// Name returns the name of this checker.
func (c *CircuitChecker) Name() string { return c.name }

// Check reads the breaker state.
func (c *CircuitChecker) Check(context.Context) Result {
	if c.cb == nil {
		return Healthy("no circuit breaker")
	}

	state := c.cb.State()
	details := map[string]any{
		"state":    state.String(),
		"failures": c.cb.Failures(),
	}
	switch state {
	case resilience.StateOpen:
		return Unhealthy("circuit open", resilience.ErrCircuitOpen).WithDetails(details)
	case resilience.StateHalfOpen:
		return Degraded("circuit half-open").WithDetails(details)
	default:
		return Healthy("circuit closed").WithDetails(details)
	}
}

var _ Checker = (*CircuitChecker)(nil)
