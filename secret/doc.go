// Package secret resolves credentials referenced from configuration files so
// that signing keys and backend passwords never have to be written inline.
//
// A value goes through two steps:
//   - Strict environment expansion (see ExpandEnvStrict).
//   - Replacement of secret references by a Provider (see Resolver).
//
// References take the form "secretref:<provider>:<ref>", either as the
// whole value or embedded in one:
//   - Full value:  secretref:env:FETCHCACHE_SIGNING_KEY
//   - Inline use:  redis://:secretref:file:/run/secrets/redis@cache:6379
//
// EnvProvider ("env") and FileProvider ("file") are built in.
package secret
