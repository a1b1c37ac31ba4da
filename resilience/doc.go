// Package resilience provides failure-handling policies for transport calls.
//
// The fetch gateway itself never retries: a failed round trip surfaces to the
// caller unchanged. Transports that want recovery opt in by routing calls
// through an Executor, which composes the policies below:
//
//   - Timeout: bounds a single attempt.
//   - Retry: re-runs failed attempts with exponential backoff.
//   - Circuit Breaker: fails fast after repeated failures until the remote
//     recovers.
//
// Usage:
//
//	exec := resilience.NewExecutor(
//	    resilience.WithCircuitBreaker(resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{MaxFailures: 5})),
//	    resilience.WithRetry(resilience.NewRetry(resilience.RetryConfig{MaxAttempts: 3})),
//	    resilience.WithTimeout(5*time.Second),
//	)
//
//	err := exec.Execute(ctx, func(ctx context.Context) error {
//	    body, err = client.Fetch(ctx, endpoint, params)
//	    return err
//	})
package resilience
