package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records gateway and transport measurements.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Errors: implementations must not panic.
type Metrics interface {
	// RecordFetch records one transport round trip.
	RecordFetch(ctx context.Context, meta RequestMeta, duration time.Duration, err error)

	// RecordLookup records a read-through cache lookup.
	RecordLookup(ctx context.Context, meta RequestMeta, hit bool)

	// RecordInvalidation records how many entries an invalidation removed.
	RecordInvalidation(ctx context.Context, removed int)

	// RecordReset records a full cache reset.
	RecordReset(ctx context.Context)
}

type metricsImpl struct {
	requests      metric.Int64Counter
	errors        metric.Int64Counter
	duration      metric.Float64Histogram
	hits          metric.Int64Counter
	misses        metric.Int64Counter
	invalidations metric.Int64Counter
	resets        metric.Int64Counter
}

// NewMetrics creates the gateway instruments on meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	var (
		m   metricsImpl
		err error
	)

	if m.requests, err = meter.Int64Counter("fetch.requests",
		metric.WithDescription("Transport round trips issued by the gateway"),
		metric.WithUnit("{request}")); err != nil {
		return nil, err
	}
	if m.errors, err = meter.Int64Counter("fetch.errors",
		metric.WithDescription("Transport round trips that failed"),
		metric.WithUnit("{error}")); err != nil {
		return nil, err
	}
	if m.duration, err = meter.Float64Histogram("fetch.duration_ms",
		metric.WithDescription("Transport round trip duration in milliseconds"),
		metric.WithUnit("ms")); err != nil {
		return nil, err
	}
	if m.hits, err = meter.Int64Counter("cache.hits",
		metric.WithDescription("Read-through lookups served from the store"),
		metric.WithUnit("{lookup}")); err != nil {
		return nil, err
	}
	if m.misses, err = meter.Int64Counter("cache.misses",
		metric.WithDescription("Read-through lookups that went to the transport"),
		metric.WithUnit("{lookup}")); err != nil {
		return nil, err
	}
	if m.invalidations, err = meter.Int64Counter("cache.invalidations",
		metric.WithDescription("Entries removed by endpoint invalidation"),
		metric.WithUnit("{entry}")); err != nil {
		return nil, err
	}
	if m.resets, err = meter.Int64Counter("cache.resets",
		metric.WithDescription("Full cache resets"),
		metric.WithUnit("{reset}")); err != nil {
		return nil, err
	}

	return &m, nil
}

func (m *metricsImpl) RecordFetch(ctx context.Context, meta RequestMeta, duration time.Duration, err error) {
	opt := metric.WithAttributes(
		attribute.String("fetch.endpoint", meta.Endpoint),
		attribute.Bool("fetch.cached", meta.Cached),
	)

	m.requests.Add(ctx, 1, opt)
	if err != nil {
		m.errors.Add(ctx, 1, opt)
	}
	m.duration.Record(ctx, float64(duration.Microseconds())/1000, opt)
}

func (m *metricsImpl) RecordLookup(ctx context.Context, meta RequestMeta, hit bool) {
	opt := metric.WithAttributes(attribute.String("fetch.endpoint", meta.Endpoint))
	if hit {
		m.hits.Add(ctx, 1, opt)
	} else {
		m.misses.Add(ctx, 1, opt)
	}
}

func (m *metricsImpl) RecordInvalidation(ctx context.Context, removed int) {
	m.invalidations.Add(ctx, int64(removed))
}

func (m *metricsImpl) RecordReset(ctx context.Context) {
	m.resets.Add(ctx, 1)
}

type nopMetrics struct{}

// NopMetrics returns a Metrics that records nothing.
func NopMetrics() Metrics { return nopMetrics{} }

func (nopMetrics) RecordFetch(context.Context, RequestMeta, time.Duration, error) {}
func (nopMetrics) RecordLookup(context.Context, RequestMeta, bool)                {}
func (nopMetrics) RecordInvalidation(context.Context, int)                        {}
func (nopMetrics) RecordReset(context.Context)                                    {}
