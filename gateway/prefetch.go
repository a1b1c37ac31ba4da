package gateway

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/fetchcache/cache"
)

// Request names one read for Prefetch.
type Request struct {
	Endpoint cache.Endpoint
	Params   any
}

// Prefetch warms the store with reqs, running at most limit reads at once
// (limit <= 0 means no bound). It returns the first error; reads that
// already succeeded stay cached. Duplicate requests are fetched
// independently.
func (g *Gateway) Prefetch(ctx context.Context, limit int, reqs ...Request) error {
	eg, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		eg.SetLimit(limit)
	}

	for _, req := range reqs {
		eg.Go(func() error {
			_, err := g.readThrough(ctx, req.Endpoint, req.Params, nil)
			return err
		})
	}
	return eg.Wait()
}
