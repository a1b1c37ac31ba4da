package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// scanBatch is the COUNT hint passed to SCAN.
const scanBatch = 256

// RedisConfig holds the connection settings for a RedisStore.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	Namespace string
}

// RedisStore is a Store backed by Redis. Every key is stored under
// "<namespace>:" so several sessions can share one Redis without seeing
// each other's entries. Values are written without expiry.
type RedisStore struct {
	client    redis.UniversalClient
	namespace string
	logger    zerolog.Logger
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithRedisLogger logs backend failures that Get reports as misses.
func WithRedisLogger(l zerolog.Logger) RedisOption {
	return func(s *RedisStore) {
		s.logger = l.With().Str("component", "RedisStore").Logger()
	}
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client redis.UniversalClient, namespace string, opts ...RedisOption) (*RedisStore, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if strings.TrimSpace(namespace) == "" {
		return nil, ErrEmptyScope
	}
	s := &RedisStore{client: client, namespace: namespace, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// DialRedis connects to Redis, pings it and returns a store over the connection.
func DialRedis(ctx context.Context, cfg RedisConfig, opts ...RedisOption) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("cache: connect to redis at %s: %w", cfg.Addr, err)
	}

	store, err := NewRedisStore(rdb, cfg.Namespace, opts...)
	if err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return store, nil
}

// Get retrieves a value. redis.Nil is a plain miss; any other backend error
// is logged and also reported as a miss, so the caller falls through to the
// transport.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := s.client.Get(ctx, s.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("redis get failed, treating as miss")
		return nil, false
	}
	return value, true
}

// Set stores value under key with no expiry.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.redisKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("cache: redis set: %w", err)
	}
	return nil
}

// Delete removes key. Idempotent - no error on miss.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.redisKey(key)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("cache: redis del: %w", err)
	}
	return nil
}

// Keys scans the namespace and returns the cache keys found in it.
func (s *RedisStore) Keys(ctx context.Context) ([]string, error) {
	raw, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}

	prefix := s.namespace + ":"
	keys := make([]string, 0, len(raw))
	for _, k := range raw {
		keys = append(keys, strings.TrimPrefix(k, prefix))
	}
	return keys, nil
}

// Reset deletes every key in the namespace.
func (s *RedisStore) Reset(ctx context.Context) error {
	raw, err := s.scan(ctx)
	if err != nil {
		return err
	}

	for start := 0; start < len(raw); start += scanBatch {
		end := min(start+scanBatch, len(raw))
		if err := s.client.Del(ctx, raw[start:end]...).Err(); err != nil {
			return fmt.Errorf("cache: redis reset: %w", err)
		}
	}
	return nil
}

// Ping checks connectivity to the backend.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) redisKey(key string) string {
	return s.namespace + ":" + key
}

func (s *RedisStore) scan(ctx context.Context) ([]string, error) {
	pattern := escapeGlob(s.namespace) + ":*"

	var keys []string
	iter := s.client.Scan(ctx, 0, pattern, scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("cache: redis scan: %w", err)
	}
	return keys, nil
}

// escapeGlob escapes the characters SCAN MATCH treats as pattern syntax.
func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Ensure RedisStore implements Store
var _ Store = (*RedisStore)(nil)
