// Package config loads the fetchcache YAML configuration.
//
// Every string that may carry a credential passes through a secret.Resolver
// after decoding, so values can be written as ${ENV}, secretref:env:NAME or
// secretref:file:/path.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/jonwraymond/fetchcache/auth"
	"github.com/jonwraymond/fetchcache/cache"
	"github.com/jonwraymond/fetchcache/observe"
	"github.com/jonwraymond/fetchcache/resilience"
	"github.com/jonwraymond/fetchcache/secret"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Transport kinds.
const (
	TransportMock = "mock"
	TransportHTTP = "http"
)

// Validation errors.
var (
	ErrInvalidStore      = errors.New("config: store.backend must be memory or redis")
	ErrMissingRedisAddr  = errors.New("config: store.redis.addr is required")
	ErrInvalidTransport  = errors.New("config: transport.kind must be mock or http")
	ErrMissingBaseURL    = errors.New("config: transport.base_url is required for http")
	ErrMissingSigningKey = errors.New("config: auth.signing_key is required when auth is enabled")
	ErrInvalidRetry      = errors.New("config: invalid retry settings")
)

// Config is the top-level configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store"`
	Transport TransportConfig `yaml:"transport"`
	Auth      AuthConfig      `yaml:"auth"`
	Server    ServerConfig    `yaml:"server"`
	Observe   observe.Config  `yaml:"observe"`
}

// StoreConfig selects the cache store.
type StoreConfig struct {
	Backend     string      `yaml:"backend"`      // memory|redis
	WarnEntries int         `yaml:"warn_entries"` // health degrades at this size; 0 disables
	Redis       RedisConfig `yaml:"redis"`
}

// RedisConfig holds Redis store settings.
type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	Namespace string `yaml:"namespace"` // sessions sharing a namespace share entries
}

// TransportConfig selects and tunes the transport.
type TransportConfig struct {
	Kind    string        `yaml:"kind"`     // mock|http
	BaseURL string        `yaml:"base_url"` // http only
	Latency time.Duration `yaml:"latency"`  // mock only
	Timeout time.Duration `yaml:"timeout"`  // per attempt; 0 disables
	Retry   RetryConfig   `yaml:"retry"`
	Circuit CircuitConfig `yaml:"circuit"`
}

// RetryConfig tunes transport retries. MaxAttempts <= 1 disables retry.
type RetryConfig struct {
	MaxAttempts  int           `yaml:"max_attempts"`
	InitialDelay time.Duration `yaml:"initial_delay"`
	MaxDelay     time.Duration `yaml:"max_delay"`
	Multiplier   float64       `yaml:"multiplier"`
	Jitter       bool          `yaml:"jitter"`
}

// CircuitConfig tunes the transport circuit breaker.
type CircuitConfig struct {
	Enabled      bool          `yaml:"enabled"`
	MaxFailures  int           `yaml:"max_failures"`
	ResetTimeout time.Duration `yaml:"reset_timeout"`
}

// AuthConfig configures bearer tokens between the HTTP transport and the
// serving backend.
type AuthConfig struct {
	Enabled    bool          `yaml:"enabled"`
	SigningKey string        `yaml:"signing_key"`
	Issuer     string        `yaml:"issuer"`
	Audience   string        `yaml:"audience"`
	Subject    string        `yaml:"subject"`
	TTL        time.Duration `yaml:"ttl"`
}

// ServerConfig configures the demo backend server.
type ServerConfig struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Store: StoreConfig{
			Backend: StoreMemory,
			Redis:   RedisConfig{Addr: "localhost:6379", Namespace: "fetchcache"},
		},
		Transport: TransportConfig{
			Kind:    TransportMock,
			Timeout: 5 * time.Second,
			Retry: RetryConfig{
				MaxAttempts:  3,
				InitialDelay: 100 * time.Millisecond,
				MaxDelay:     2 * time.Second,
				Multiplier:   2,
				Jitter:       true,
			},
			Circuit: CircuitConfig{
				Enabled:      true,
				MaxFailures:  5,
				ResetTimeout: 30 * time.Second,
			},
		},
		Auth: AuthConfig{
			Issuer:   "fetchcache",
			Audience: "approvals-api",
			Subject:  "fetchcache-session",
			TTL:      auth.DefaultTokenTTL,
		},
		Server: ServerConfig{
			Addr:              "127.0.0.1:8080",
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		Observe: observe.Config{
			ServiceName: "fetchcache",
			Logging:     observe.LoggingConfig{Enabled: true, Level: "info"},
		},
	}
}

// Load reads path, applies defaults for missing fields, resolves secrets
// and validates. Relative secretref:file paths resolve against the
// directory of path.
func Load(ctx context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(ctx, bytes.NewReader(data), secret.DefaultResolver(filepath.Dir(path)))
}

// Parse decodes YAML from r over Default, resolves secrets with resolver
// and validates. A nil resolver only expands environment variables.
func Parse(ctx context.Context, r io.Reader, resolver *secret.Resolver) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.resolve(ctx, resolver); err != nil {
		return nil, fmt.Errorf("resolve config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) resolve(ctx context.Context, r *secret.Resolver) error {
	return r.ResolveAll(ctx,
		&c.Store.Redis.Addr,
		&c.Store.Redis.Password,
		&c.Store.Redis.Namespace,
		&c.Transport.BaseURL,
		&c.Auth.SigningKey,
		&c.Server.Addr,
	)
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case StoreMemory:
	case StoreRedis:
		if c.Store.Redis.Addr == "" {
			return ErrMissingRedisAddr
		}
	default:
		return fmt.Errorf("%w, got %q", ErrInvalidStore, c.Store.Backend)
	}

	switch c.Transport.Kind {
	case TransportMock:
	case TransportHTTP:
		if c.Transport.BaseURL == "" {
			return ErrMissingBaseURL
		}
	default:
		return fmt.Errorf("%w, got %q", ErrInvalidTransport, c.Transport.Kind)
	}

	if r := c.Transport.Retry; r.MaxAttempts > 1 && (r.InitialDelay < 0 || r.MaxDelay < r.InitialDelay || r.Multiplier < 1) {
		return fmt.Errorf("%w: %+v", ErrInvalidRetry, r)
	}

	if c.Auth.Enabled && c.Auth.SigningKey == "" {
		return ErrMissingSigningKey
	}

	return c.Observe.Validate()
}

// RedisStore returns the cache.RedisConfig for the store section.
func (c StoreConfig) RedisStore() cache.RedisConfig {
	return cache.RedisConfig{
		Addr:      c.Redis.Addr,
		Password:  c.Redis.Password,
		DB:        c.Redis.DB,
		Namespace: c.Redis.Namespace,
	}
}

// JWT returns the auth.JWTConfig for the auth section.
func (c AuthConfig) JWT() auth.JWTConfig {
	return auth.JWTConfig{
		SigningKey: []byte(c.SigningKey),
		Issuer:     c.Issuer,
		Audience:   c.Audience,
		Subject:    c.Subject,
		TTL:        c.TTL,
	}
}

// Executor builds the resilience executor for the transport section.
// retryIf decides which errors are retried and which count against the
// circuit breaker; nil uses resilience.Retryable and counts every error.
func (c TransportConfig) Executor(retryIf func(error) bool) *resilience.Executor {
	var opts []resilience.ExecutorOption
	if c.Circuit.Enabled {
		opts = append(opts, resilience.WithCircuitBreaker(resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			MaxFailures:  c.Circuit.MaxFailures,
			ResetTimeout: c.Circuit.ResetTimeout,
			IsFailure:    retryIf,
		})))
	}
	if c.Retry.MaxAttempts > 1 {
		opts = append(opts, resilience.WithRetry(resilience.NewRetry(resilience.RetryConfig{
			MaxAttempts:  c.Retry.MaxAttempts,
			InitialDelay: c.Retry.InitialDelay,
			MaxDelay:     c.Retry.MaxDelay,
			Multiplier:   c.Retry.Multiplier,
			Jitter:       c.Retry.Jitter,
			RetryIf:      retryIf,
		})))
	}
	if c.Timeout > 0 {
		opts = append(opts, resilience.WithTimeout(c.Timeout))
	}
	return resilience.NewExecutor(opts...)
}
