package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonwraymond/fetchcache/cache"
	"github.com/jonwraymond/fetchcache/observe"
)

// Fetch returns the payload for endpoint and params, from the store when
// present and from the transport otherwise. A successful transport payload
// is stored before it is returned; a failed one is not.
func (g *Gateway) Fetch(ctx context.Context, endpoint cache.Endpoint, params any) ([]byte, error) {
	return g.readThrough(ctx, endpoint, params, nil)
}

// FetchUncached always calls the transport and never touches the store.
func (g *Gateway) FetchUncached(ctx context.Context, endpoint cache.Endpoint, params any) ([]byte, error) {
	done := g.track()
	defer done()

	return g.transport.Fetch(ctx, endpoint, params)
}

// FetchWithCache is the typed read-through fetch. The payload is decoded
// into T; a transport payload that does not decode is not stored.
// A JSON null or empty payload yields the zero T.
func FetchWithCache[T any](ctx context.Context, g *Gateway, endpoint cache.Endpoint, params any) (T, error) {
	var out T
	_, err := g.readThrough(ctx, endpoint, params, func(body []byte) error {
		return decode(body, &out)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// FetchWithoutCache is the typed bypass fetch, used for mutations and for
// results that are never reused.
func FetchWithoutCache[T any](ctx context.Context, g *Gateway, endpoint cache.Endpoint, params any) (T, error) {
	var out T
	body, err := g.FetchUncached(ctx, endpoint, params)
	if err != nil {
		return out, err
	}
	if err := decode(body, &out); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %s: %v", ErrDecode, endpoint, err)
	}
	return out, nil
}

// readThrough implements the cached path. accept, when set, must succeed
// for a payload to be returned and, on a miss, to be stored.
func (g *Gateway) readThrough(ctx context.Context, endpoint cache.Endpoint, params any, accept func([]byte) error) ([]byte, error) {
	key, err := cache.Key(endpoint, params)
	if err != nil {
		return nil, err
	}

	done := g.track()
	defer done()

	meta := observe.RequestMeta{Endpoint: string(endpoint), Key: key, Cached: true}
	logger := g.logger.WithRequest(meta)

	if body, ok := g.store.Get(ctx, key); ok {
		g.metrics.RecordLookup(ctx, meta, true)
		if accept != nil {
			if err := accept(body); err != nil {
				return nil, fmt.Errorf("%w: cached %s: %v", ErrDecode, key, err)
			}
		}
		logger.Debug(ctx, "cache hit")
		return body, nil
	}
	g.metrics.RecordLookup(ctx, meta, false)

	body, err := g.transport.Fetch(ctx, endpoint, params)
	if err != nil {
		logger.Warn(ctx, "fetch failed, nothing cached", observe.Field{Key: "error", Value: err})
		return nil, err
	}
	if accept != nil {
		if err := accept(body); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDecode, key, err)
		}
	}

	if err := g.store.Set(ctx, key, body); err != nil {
		// The round trip succeeded; only the write-back failed.
		logger.Warn(ctx, "cache write failed", observe.Field{Key: "error", Value: err})
	} else {
		logger.Debug(ctx, "cache filled", observe.Field{Key: "bytes", Value: len(body)})
	}
	return body, nil
}

func decode(body []byte, out any) error {
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}
