// Package transport provides gateway.Transport implementations and
// decorators.
//
// HTTP posts each request's params as JSON to <BaseURL>/<endpoint> and
// returns the response body. Resilient adds timeouts, retries and a circuit
// breaker; Observed adds a span, metrics and a log line per round trip.
// Decorators stack, outermost first: Observed, Resilient, HTTP. With that
// order one span covers all retry attempts of a request.
package transport
