package gateway

import (
	"context"
	"fmt"

	"github.com/jonwraymond/fetchcache/cache"
	"github.com/jonwraymond/fetchcache/observe"
)

// ClearCacheByEndpoint deletes every stored entry whose key starts with one
// of targets. A target is either a bare endpoint name, which clears all of
// that endpoint's parameterizations, or a key from CacheKey, which clears
// only that one. Matching is a literal prefix test, so an empty target
// clears every entry. Clearing absent entries is a no-op.
func (g *Gateway) ClearCacheByEndpoint(ctx context.Context, targets ...string) error {
	if len(targets) == 0 {
		return nil
	}

	keys, err := g.store.Keys(ctx)
	if err != nil {
		return fmt.Errorf("gateway: list keys: %w", err)
	}

	removed := 0
	for _, key := range keys {
		if !cache.MatchesAny(key, targets) {
			continue
		}
		if err := g.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("gateway: delete %s: %w", key, err)
		}
		removed++
	}

	g.metrics.RecordInvalidation(ctx, removed)
	g.logger.Info(ctx, "cache invalidated",
		observe.Field{Key: "targets", Value: targets},
		observe.Field{Key: "removed", Value: removed},
	)
	return nil
}

// ClearCache discards every stored entry.
func (g *Gateway) ClearCache(ctx context.Context) error {
	if err := g.store.Reset(ctx); err != nil {
		return fmt.Errorf("gateway: reset: %w", err)
	}

	g.metrics.RecordReset(ctx)
	g.logger.Info(ctx, "cache cleared")
	return nil
}
