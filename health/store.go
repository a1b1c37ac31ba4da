package health

import (
	"context"
	"fmt"

	"github.com/jonwraymond/fetchcache/cache"
)

// Pinger is implemented by stores backed by a network service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StoreCheckerConfig configures StoreChecker.
type StoreCheckerConfig struct {
	// WarnEntries is the entry count at which the store reports degraded.
	// Zero disables the threshold.
	WarnEntries int
}

// StoreChecker checks a cache.Store.
type StoreChecker struct {
	name   string
	store  cache.Store
	config StoreCheckerConfig
}

// NewStoreChecker creates a StoreChecker.
func NewStoreChecker(name string, store cache.Store, config StoreCheckerConfig) *StoreChecker {
	return &StoreChecker{name: name, store: store, config: config}
}

// Name returns the name of this checker.
func (c *StoreChecker) Name() string { return c.name }

// Check pings the store when it supports it, then counts entries.
func (c *StoreChecker) Check(ctx context.Context) Result {
	if p, ok := c.store.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return Unhealthy("store unreachable", err)
		}
	}

	keys, err := c.store.Keys(ctx)
	if err != nil {
		return Unhealthy("store keys unavailable", err)
	}

	details := map[string]any{"entries": len(keys)}
	if c.config.WarnEntries > 0 {
		details["warn_entries"] = c.config.WarnEntries
		if len(keys) >= c.config.WarnEntries {
			return Degraded(fmt.Sprintf("store holds %d entries", len(keys))).WithDetails(details)
		}
	}
	return Healthy(fmt.Sprintf("store holds %d entries", len(keys))).WithDetails(details)
}

var _ Checker = (*StoreChecker)(nil)
