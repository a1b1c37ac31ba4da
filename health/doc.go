// Package health reports whether a fetch session's dependencies are usable.
//
// A Checker reports one component as Healthy, Degraded or Unhealthy.
// StoreChecker watches the cache store: it pings networked stores and flags
// stores that have grown past a threshold, since entries are only removed by
// explicit invalidation. CircuitChecker reports the transport's circuit
// breaker. An Aggregator runs checks together and the handlers in this
// package expose the results over HTTP:
//
//	agg := health.NewAggregator()
//	agg.Register(health.NewStoreChecker("cache", store, health.StoreCheckerConfig{WarnEntries: 10_000}))
//	agg.Register(health.NewCircuitChecker("transport", breaker))
//	health.RegisterHandlers(mux, agg)
package health
