package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jonwraymond/fetchcache/config"
	"github.com/jonwraymond/fetchcache/observe"
)

func run(configPath string, serve bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(ctx, configPath)
	if err != nil {
		return err
	}
	if cfg.Observe.Version == "" {
		cfg.Observe.Version = version
	}

	obs, err := observe.NewObserver(ctx, cfg.Observe)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = obs.Shutdown(shutdownCtx)
	}()

	logger := obs.Logger()
	logger.Info(ctx, "starting fetchcache",
		observe.Field{Key: "version", Value: version},
		observe.Field{Key: "store", Value: cfg.Store.Backend},
		observe.Field{Key: "transport", Value: cfg.Transport.Kind},
	)

	if serve {
		return serveBackend(ctx, cfg, obs)
	}

	s, err := newSession(ctx, cfg, obs)
	if err != nil {
		return err
	}
	defer s.Close()

	err = runScript(ctx, s, os.Stdout)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	if strings.TrimSpace(path) == "" {
		cfg := config.Default()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return config.Load(ctx, path)
}
