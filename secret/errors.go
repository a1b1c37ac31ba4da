package secret

import "errors"

// Sentinel errors for secret resolution.
var (
	ErrMissingEnv      = errors.New("secret: missing required environment variables")
	ErrUnknownProvider = errors.New("secret: provider is not registered")
	ErrEmptySecret     = errors.New("secret: resolved value is empty")
	ErrSecretNotFound  = errors.New("secret: not found")
	ErrMalformedRef    = errors.New("secret: malformed reference")
)
