package main

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/jonwraymond/fetchcache/approvals"
	"github.com/jonwraymond/fetchcache/auth"
	"github.com/jonwraymond/fetchcache/cache"
	"github.com/jonwraymond/fetchcache/config"
	"github.com/jonwraymond/fetchcache/gateway"
	"github.com/jonwraymond/fetchcache/health"
	"github.com/jonwraymond/fetchcache/observe"
	"github.com/jonwraymond/fetchcache/transport"
)

// session is everything one approval session owns.
type session struct {
	store   cache.Store
	gateway *gateway.Gateway
	client  *approvals.Client
	health  *health.Aggregator
	closers []io.Closer
}

func newSession(ctx context.Context, cfg *config.Config, obs observe.Observer) (*session, error) {
	s := &session{}

	store, err := newStore(ctx, cfg.Store, cfg.Observe.Logging.Enabled)
	if err != nil {
		return nil, err
	}
	s.store = store
	if c, ok := store.(io.Closer); ok {
		s.closers = append(s.closers, c)
	}

	base, err := newTransport(cfg)
	if err != nil {
		s.Close()
		return nil, err
	}
	resilient, err := transport.NewResilient(base, cfg.Transport.Executor(retryPolicy(cfg.Transport.Kind)))
	if err != nil {
		s.Close()
		return nil, err
	}
	mw, err := observe.MiddlewareFromObserver(obs)
	if err != nil {
		s.Close()
		return nil, err
	}
	observed, err := transport.NewObserved(resilient, mw)
	if err != nil {
		s.Close()
		return nil, err
	}

	metrics, err := observe.NewMetrics(obs.Meter())
	if err != nil {
		s.Close()
		return nil, err
	}
	s.gateway, err = gateway.New(store, observed,
		gateway.WithLogger(obs.Logger()),
		gateway.WithMetrics(metrics),
	)
	if err != nil {
		s.Close()
		return nil, err
	}
	if s.client, err = approvals.NewClient(s.gateway); err != nil {
		s.Close()
		return nil, err
	}

	s.health = health.NewAggregator()
	s.health.Register(
		health.NewStoreChecker("store", store, health.StoreCheckerConfig{WarnEntries: cfg.Store.WarnEntries}),
		health.NewCircuitChecker("transport", resilient.CircuitBreaker()),
	)
	return s, nil
}

func newStore(ctx context.Context, cfg config.StoreConfig, logging bool) (cache.Store, error) {
	if cfg.Backend == config.StoreRedis {
		logger := zerolog.Nop()
		if logging {
			logger = zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger()
		}
		return cache.DialRedis(ctx, cfg.RedisStore(), cache.WithRedisLogger(logger))
	}
	return cache.NewMemoryStore(), nil
}

func newTransport(cfg *config.Config) (gateway.Transport, error) {
	if cfg.Transport.Kind == config.TransportMock {
		return approvals.NewBackend(approvals.BackendConfig{Latency: cfg.Transport.Latency}), nil
	}

	httpCfg := transport.HTTPConfig{
		BaseURL:   cfg.Transport.BaseURL,
		UserAgent: "fetchcache/" + version,
	}
	if cfg.Auth.Enabled {
		signer, err := auth.NewSigner(cfg.Auth.JWT())
		if err != nil {
			return nil, err
		}
		httpCfg.Tokens = signer
	}
	return transport.NewHTTP(httpCfg)
}

// retryPolicy picks the error classifier that matches the transport kind.
func retryPolicy(kind string) func(error) bool {
	if kind == config.TransportMock {
		return approvals.Retryable
	}
	return transport.Retryable
}

// Close releases the store connection.
func (s *session) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
