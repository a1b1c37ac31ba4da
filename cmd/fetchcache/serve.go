package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonwraymond/fetchcache/approvals"
	"github.com/jonwraymond/fetchcache/auth"
	"github.com/jonwraymond/fetchcache/config"
	"github.com/jonwraymond/fetchcache/health"
	"github.com/jonwraymond/fetchcache/observe"
)

// newServeMux builds the backend API: approval endpoints under "/", health
// probes, and /metrics when the prometheus exporter is selected.
func newServeMux(cfg *config.Config, backend *approvals.Backend, agg *health.Aggregator) (*http.ServeMux, error) {
	var api http.Handler = approvals.Handler(backend)
	if cfg.Auth.Enabled {
		verifier, err := auth.NewVerifier(cfg.Auth.JWT())
		if err != nil {
			return nil, err
		}
		api = auth.RequireBearer(verifier, api)
	}

	mux := http.NewServeMux()
	mux.Handle("/", api)
	health.RegisterHandlers(mux, agg)
	if cfg.Observe.Metrics.Enabled && cfg.Observe.Metrics.Exporter == "prometheus" {
		mux.Handle("/metrics", promhttp.Handler())
	}
	return mux, nil
}

func serveBackend(ctx context.Context, cfg *config.Config, obs observe.Observer) error {
	logger := obs.Logger()
	backend := approvals.NewBackend(approvals.BackendConfig{Latency: cfg.Transport.Latency})

	agg := health.NewAggregator()
	agg.Register(health.NewCheckerFunc("backend", func(context.Context) health.Result {
		return health.Healthy(fmt.Sprintf("%d approvals recorded", backend.Calls(approvals.EndpointSetTransactionApproval)))
	}))

	mux, err := newServeMux(cfg, backend, agg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	logger.Info(ctx, "approval API ready",
		observe.Field{Key: "addr", Value: cfg.Server.Addr},
		observe.Field{Key: "auth", Value: cfg.Auth.Enabled},
	)

	select {
	case <-ctx.Done():
		logger.Info(context.Background(), "shutting down")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info(context.Background(), "approval API stopped")
	return nil
}
