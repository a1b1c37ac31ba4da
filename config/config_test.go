package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonwraymond/fetchcache/observe"
	"github.com/jonwraymond/fetchcache/resilience"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "fetchcache.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "signing_key"), []byte("file-key\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FETCHCACHE_TEST_REDIS", "cache.internal:6379")

	path := writeConfig(t, dir, `
store:
  backend: redis
  warn_entries: 500
  redis:
    addr: ${FETCHCACHE_TEST_REDIS}
    namespace: session-42
transport:
  kind: http
  base_url: http://127.0.0.1:8080
  timeout: 250ms
  retry:
    max_attempts: 4
    initial_delay: 10ms
    max_delay: 1s
auth:
  enabled: true
  signing_key: secretref:file:signing_key
observe:
  service_name: approvals-ui
  logging:
    enabled: true
    level: debug
`)

	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Store.Backend != StoreRedis || cfg.Store.Redis.Addr != "cache.internal:6379" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Store.RedisStore().Namespace != "session-42" {
		t.Errorf("namespace = %q", cfg.Store.RedisStore().Namespace)
	}
	if cfg.Store.WarnEntries != 500 {
		t.Errorf("warn_entries = %d", cfg.Store.WarnEntries)
	}
	if cfg.Transport.Timeout != 250*time.Millisecond {
		t.Errorf("timeout = %v", cfg.Transport.Timeout)
	}
	if cfg.Transport.Retry.MaxAttempts != 4 || cfg.Transport.Retry.Multiplier != 2 {
		t.Errorf("retry = %+v, want max_attempts from file and default multiplier", cfg.Transport.Retry)
	}
	if !cfg.Transport.Circuit.Enabled {
		t.Error("circuit default lost")
	}
	if got := string(cfg.Auth.JWT().SigningKey); got != "file-key" {
		t.Errorf("signing key = %q, want file-key", got)
	}
	if cfg.Auth.JWT().Audience != "approvals-api" {
		t.Errorf("audience default lost: %q", cfg.Auth.Audience)
	}
	if cfg.Observe.ServiceName != "approvals-ui" || cfg.Observe.Logging.Level != "debug" {
		t.Errorf("observe = %+v", cfg.Observe)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want ErrNotExist", err)
	}
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(context.Background(), strings.NewReader(""), nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Store.Backend != StoreMemory || cfg.Transport.Kind != TransportMock {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse(context.Background(), strings.NewReader("store:\n  backnd: memory\n"), nil)
	if err == nil || !strings.Contains(err.Error(), "backnd") {
		t.Errorf("Parse() error = %v, want unknown field error", err)
	}
}

func TestParse_UnresolvedSecret(t *testing.T) {
	_, err := Parse(context.Background(), strings.NewReader("auth:\n  signing_key: ${FETCHCACHE_TEST_UNSET_KEY}\n"), nil)
	if err == nil || !strings.Contains(err.Error(), "FETCHCACHE_TEST_UNSET_KEY") {
		t.Errorf("Parse() error = %v, want missing env error", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bad store", mutate: func(c *Config) { c.Store.Backend = "etcd" }, wantErr: ErrInvalidStore},
		{name: "redis without addr", mutate: func(c *Config) { c.Store.Backend = StoreRedis; c.Store.Redis.Addr = "" }, wantErr: ErrMissingRedisAddr},
		{name: "bad transport", mutate: func(c *Config) { c.Transport.Kind = "grpc" }, wantErr: ErrInvalidTransport},
		{name: "http without base url", mutate: func(c *Config) { c.Transport.Kind = TransportHTTP }, wantErr: ErrMissingBaseURL},
		{name: "auth without key", mutate: func(c *Config) { c.Auth.Enabled = true }, wantErr: ErrMissingSigningKey},
		{name: "bad retry", mutate: func(c *Config) { c.Transport.Retry.Multiplier = 0.5 }, wantErr: ErrInvalidRetry},
		{name: "retry disabled ignores delays", mutate: func(c *Config) { c.Transport.Retry = RetryConfig{MaxAttempts: 1} }},
		{name: "observe invalid", mutate: func(c *Config) { c.Observe.ServiceName = "" }, wantErr: observe.ErrMissingServiceName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTransportConfig_Executor(t *testing.T) {
	cfg := Default().Transport
	exec := cfg.Executor(nil)
	if exec.CircuitBreaker() == nil {
		t.Error("circuit breaker not configured")
	}

	cfg.Circuit.Enabled = false
	cfg.Retry.MaxAttempts = 1
	cfg.Timeout = 0
	exec = cfg.Executor(nil)
	if exec.CircuitBreaker() != nil {
		t.Error("circuit breaker configured when disabled")
	}

	calls := 0
	err := exec.Execute(context.Background(), func(context.Context) error {
		calls++
		return resilience.ErrTimeout
	})
	if !errors.Is(err, resilience.ErrTimeout) || calls != 1 {
		t.Errorf("Execute() = %v after %d calls, want one direct call", err, calls)
	}
}

func TestTransportConfig_ExecutorClassifiesFailures(t *testing.T) {
	permanent := errors.New("rejected")
	retryIf := func(err error) bool { return err != nil && !errors.Is(err, permanent) }

	cfg := Default().Transport
	cfg.Retry.InitialDelay = time.Millisecond
	exec := cfg.Executor(retryIf)

	calls := 0
	err := exec.Execute(context.Background(), func(context.Context) error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) || calls != 1 {
		t.Errorf("Execute() = %v after %d calls, want one call", err, calls)
	}
	if got := exec.CircuitBreaker().Failures(); got != 0 {
		t.Errorf("breaker failures = %d, want 0 for a permanent error", got)
	}
}
