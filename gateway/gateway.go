package gateway

import (
	"context"
	"sync/atomic"

	"github.com/jonwraymond/fetchcache/cache"
	"github.com/jonwraymond/fetchcache/observe"
)

// Transport performs one round trip to the remote endpoint and returns its
// JSON payload.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Context: implementations should honor cancellation/deadlines.
//   - Errors: any error means the request did not succeed; it is returned
//     to the gateway caller unchanged.
type Transport interface {
	Fetch(ctx context.Context, endpoint cache.Endpoint, params any) ([]byte, error)
}

// TransportFunc adapts an ordinary function to Transport.
type TransportFunc func(ctx context.Context, endpoint cache.Endpoint, params any) ([]byte, error)

// Fetch calls f.
func (f TransportFunc) Fetch(ctx context.Context, endpoint cache.Endpoint, params any) ([]byte, error) {
	return f(ctx, endpoint, params)
}

// Gateway is the session-scoped fetch layer. It owns no entries itself; all
// cached state lives in the Store handed to New.
type Gateway struct {
	store     cache.Store
	transport Transport
	logger    observe.Logger
	metrics   observe.Metrics

	inflight atomic.Int64
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLogger sets the logger. Default: no-op.
func WithLogger(l observe.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithMetrics sets the metrics recorder. Default: no-op.
func WithMetrics(m observe.Metrics) Option {
	return func(g *Gateway) {
		if m != nil {
			g.metrics = m
		}
	}
}

// New creates a Gateway over store and transport.
func New(store cache.Store, transport Transport, opts ...Option) (*Gateway, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if transport == nil {
		return nil, ErrNilTransport
	}

	g := &Gateway{
		store:     store,
		transport: transport,
		logger:    observe.NopLogger(),
		metrics:   observe.NopMetrics(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// CacheKey returns the key the gateway uses for endpoint and params.
// Callers use it to build invalidation targets.
func (g *Gateway) CacheKey(endpoint cache.Endpoint, params any) (string, error) {
	return cache.Key(endpoint, params)
}

// Loading reports whether any gateway-issued request is executing.
func (g *Gateway) Loading() bool {
	return g.inflight.Load() > 0
}

// InFlight returns the number of gateway-issued requests executing.
func (g *Gateway) InFlight() int {
	return int(g.inflight.Load())
}

// track marks a request as in flight until the returned func is called.
func (g *Gateway) track() func() {
	g.inflight.Add(1)
	return func() { g.inflight.Add(-1) }
}
