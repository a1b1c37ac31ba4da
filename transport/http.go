package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonwraymond/fetchcache/auth"
	"github.com/jonwraymond/fetchcache/cache"
)

// RequestIDHeader carries a fresh UUID on every request.
const RequestIDHeader = "X-Request-Id"

// DefaultMaxResponseBytes caps response bodies when HTTPConfig leaves it zero.
const DefaultMaxResponseBytes = 8 << 20

// maxErrorBody is how much of a failed response ends up in StatusError.
const maxErrorBody = 512

// HTTPConfig configures the HTTP transport.
type HTTPConfig struct {
	// BaseURL is the endpoint root, for example "https://api.example.com/v1".
	BaseURL string

	// Client is the HTTP client.
	// Default: a client with a 30 second timeout
	Client *http.Client

	// Tokens supplies bearer tokens. Nil sends no Authorization header.
	Tokens auth.TokenSource

	// UserAgent is sent when set.
	UserAgent string

	// MaxResponseBytes caps response bodies.
	// Default: DefaultMaxResponseBytes
	MaxResponseBytes int64
}

// HTTP is a gateway.Transport over HTTP POST.
type HTTP struct {
	config HTTPConfig
}

// NewHTTP creates an HTTP transport.
func NewHTTP(config HTTPConfig) (*HTTP, error) {
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if config.Client == nil {
		config.Client = &http.Client{Timeout: 30 * time.Second}
	}
	if config.MaxResponseBytes <= 0 {
		config.MaxResponseBytes = DefaultMaxResponseBytes
	}
	return &HTTP{config: config}, nil
}

// Fetch posts params to the endpoint and returns the response body.
func (t *HTTP) Fetch(ctx context.Context, endpoint cache.Endpoint, params any) ([]byte, error) {
	var body io.Reader = http.NoBody
	if params != nil {
		data, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("transport: encode %s params: %w", endpoint, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.config.BaseURL+"/"+string(endpoint), body)
	if err != nil {
		return nil, fmt.Errorf("transport: build %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())
	if t.config.UserAgent != "" {
		req.Header.Set("User-Agent", t.config.UserAgent)
	}
	if t.config.Tokens != nil {
		token, err := t.config.Tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("transport: token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.config.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transport: %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, t.config.MaxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("transport: read %s response: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(data) > maxErrorBody {
			data = data[:maxErrorBody]
		}
		return nil, &StatusError{
			Endpoint: string(endpoint),
			Code:     resp.StatusCode,
			Body:     strings.TrimSpace(string(data)),
		}
	}
	if int64(len(data)) > t.config.MaxResponseBytes {
		return nil, fmt.Errorf("transport: %s response exceeds %d bytes", endpoint, t.config.MaxResponseBytes)
	}
	return data, nil
}
