// Package gateway implements the read-through fetch layer between callers
// and a remote Transport.
//
// A Gateway derives a cache key for every (endpoint, params) pair, serves
// repeated reads from its Store and calls the Transport only on a miss.
// Successful payloads are written back; failed ones never are. Mutations go
// through FetchWithoutCache, after which the caller names the reads that the
// mutation made stale:
//
//	if _, err := gateway.FetchWithoutCache[any](ctx, g, "setTransactionApproval", params); err != nil {
//	    return err
//	}
//	byEmployee, _ := g.CacheKey("transactionsByEmployee", map[string]any{"employeeId": id})
//	return g.ClearCacheByEndpoint(ctx, "paginatedTransactions", byEmployee)
//
// A bare endpoint name clears every parameterization of that endpoint; a full
// key clears only that parameterization.
//
// Concurrent misses for the same key are not coalesced. Each one calls the
// Transport and writes the Store, and the last write wins.
package gateway
