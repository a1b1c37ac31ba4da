// Package cache provides the key codec and stores behind the fetch gateway.
//
// Keys are derived from an endpoint name and an optional parameter value:
// the bare endpoint when there are no parameters, otherwise
// "<endpoint>@<canonical JSON>". Canonical JSON is deterministic, so
// structurally equal parameters always produce the same key. Because keys
// keep the endpoint as a literal prefix, invalidation is a plain string
// prefix test (see Matches).
//
// Two Store implementations are provided: MemoryStore, an unbounded map
// scoped to the owning session, and RedisStore, a namespaced store backed by
// Redis. Neither expires or evicts entries on its own.
package cache
