package gateway

import "errors"

// Sentinel errors for gateway operations.
var (
	ErrNilStore     = errors.New("gateway: store is nil")
	ErrNilTransport = errors.New("gateway: transport is nil")
	ErrDecode       = errors.New("gateway: payload cannot be decoded")
)
