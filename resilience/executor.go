package resilience

import (
	"context"
	"time"
)

// Policy is implemented by CircuitBreaker, Retry and Timeout.
type Policy interface {
	Execute(ctx context.Context, op func(context.Context) error) error
}

// Executor runs operations inside a fixed stack of policies: circuit breaker
// outermost, then retry, then a per-attempt timeout. Unset policies are
// skipped, so a zero-option Executor calls the operation directly.
type Executor struct {
	circuitBreaker *CircuitBreaker
	retry          *Retry
	timeout        *Timeout
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithCircuitBreaker shares cb with every call made through the Executor.
func WithCircuitBreaker(cb *CircuitBreaker) ExecutorOption {
	return func(e *Executor) { e.circuitBreaker = cb }
}

func WithRetry(r *Retry) ExecutorOption {
	return func(e *Executor) { e.retry = r }
}

// WithTimeout bounds each attempt, not the whole retried call, to d.
func WithTimeout(d time.Duration) ExecutorOption {
	return func(e *Executor) { e.timeout = NewTimeout(d) }
}

// policies lists the configured policies innermost first.
func (e *Executor) policies() []Policy {
	var ps []Policy
	if e.timeout != nil {
		ps = append(ps, e.timeout)
	}
	if e.retry != nil {
		ps = append(ps, e.retry)
	}
	if e.circuitBreaker != nil {
		ps = append(ps, e.circuitBreaker)
	}
	return ps
}

// Execute runs op through the policy stack. The breaker records one outcome
// per Execute call, after retries are exhausted.
func (e *Executor) Execute(ctx context.Context, op func(context.Context) error) error {
	run := op
	for _, p := range e.policies() {
		inner := run
		run = func(ctx context.Context) error { return p.Execute(ctx, inner) }
	}
	return run(ctx)
}

// CircuitBreaker returns the breaker shared by this Executor, or nil.
func (e *Executor) CircuitBreaker() *CircuitBreaker {
	return e.circuitBreaker
}

var (
	_ Policy = (*CircuitBreaker)(nil)
	_ Policy = (*Retry)(nil)
	_ Policy = (*Timeout)(nil)
)
