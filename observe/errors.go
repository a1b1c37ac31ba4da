package observe

import "errors"

// Config.Validate errors.
var (
	ErrMissingServiceName     = errors.New("observe: service_name must be set")
	ErrInvalidSamplePct       = errors.New("observe: tracing.sample_pct must be within [0, 1]")
	ErrInvalidTracingExporter = errors.New("observe: unknown tracing exporter")
	ErrInvalidMetricsExporter = errors.New("observe: unknown metrics exporter")
	ErrInvalidLogLevel        = errors.New("observe: unknown log level")
	ErrInvalidLogOutput       = errors.New("observe: logging.output must be stderr or stdout")
)

// ErrNilObserver is returned by MiddlewareFromObserver for a nil Observer.
var ErrNilObserver = errors.New("observe: observer is nil")

// RedactedFields are log field keys whose values are replaced with
// "[REDACTED]". Matching ignores case.
var RedactedFields = []string{
	"authorization",
	"password",
	"redis_password",
	"signing_key",
	"secret",
	"token",
	"cookie",
}
