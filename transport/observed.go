package transport

import (
	"context"

	"github.com/jonwraymond/fetchcache/cache"
	"github.com/jonwraymond/fetchcache/gateway"
	"github.com/jonwraymond/fetchcache/observe"
)

// Observed wraps next with an observe.Middleware.
type Observed struct {
	execute observe.ExecuteFunc
}

// NewObserved creates an Observed transport. A nil middleware records
// nothing.
func NewObserved(next gateway.Transport, mw *observe.Middleware) (*Observed, error) {
	if next == nil {
		return nil, ErrNilNext
	}
	if mw == nil {
		mw = observe.NewMiddleware(nil, nil, nil)
	}

	execute := mw.Wrap(func(ctx context.Context, meta observe.RequestMeta, params any) ([]byte, error) {
		return next.Fetch(ctx, cache.Endpoint(meta.Endpoint), params)
	})
	return &Observed{execute: execute}, nil
}

// Fetch performs one observed round trip. The cache key is recorded when
// params can be keyed.
func (o *Observed) Fetch(ctx context.Context, endpoint cache.Endpoint, params any) ([]byte, error) {
	meta := observe.RequestMeta{Endpoint: string(endpoint)}
	if key, err := cache.Key(endpoint, params); err == nil {
		meta.Key = key
	}
	return o.execute(ctx, meta, params)
}

var (
	_ gateway.Transport = (*HTTP)(nil)
	_ gateway.Transport = (*Resilient)(nil)
	_ gateway.Transport = (*Observed)(nil)
)
