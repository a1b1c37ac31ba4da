// Package observe provides logging, metrics and tracing for the fetch gateway
// and its transports.
//
// It is a pure instrumentation library: the gateway and transport decorators
// accept its Logger, Metrics and Tracer interfaces and default to no-op
// implementations, so nothing is emitted unless an Observer is configured.
package observe
