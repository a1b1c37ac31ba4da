// Package auth mints and checks the bearer tokens that authenticate fetch
// requests against a remote endpoint.
//
// A Signer issues short-lived HS256 tokens for the HTTP transport and
// reuses each one until it nears expiry. A Verifier checks them on the
// serving side, and RequireBearer wraps an http.Handler with that check.
package auth
