package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jonwraymond/fetchcache/auth"
)

func TestNewHTTP_MissingBaseURL(t *testing.T) {
	if _, err := NewHTTP(HTTPConfig{BaseURL: "/"}); !errors.Is(err, ErrMissingBaseURL) {
		t.Errorf("NewHTTP() error = %v, want ErrMissingBaseURL", err)
	}
}

func TestHTTP_Fetch(t *testing.T) {
	jwtCfg := auth.JWTConfig{SigningKey: []byte("test-signing-key-test-signing-key"), Audience: "approvals-api", Subject: "session"}
	signer, err := auth.NewSigner(jwtCfg)
	if err != nil {
		t.Fatalf("NewSigner() error = %v", err)
	}
	verifier, err := auth.NewVerifier(jwtCfg)
	if err != nil {
		t.Fatalf("NewVerifier() error = %v", err)
	}

	var gotBody string
	srv := httptest.NewServer(auth.RequireBearer(verifier, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/v1/paginatedTransactions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if _, err := uuid.Parse(r.Header.Get(RequestIDHeader)); err != nil {
			t.Errorf("request id %q: %v", r.Header.Get(RequestIDHeader), err)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
		}
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[],"nextPage":null}`))
	})))
	defer srv.Close()

	tr, err := NewHTTP(HTTPConfig{BaseURL: srv.URL + "/v1/", Tokens: signer})
	if err != nil {
		t.Fatalf("NewHTTP() error = %v", err)
	}

	body, err := tr.Fetch(context.Background(), "paginatedTransactions", map[string]any{"page": 2})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(body) != `{"data":[],"nextPage":null}` {
		t.Errorf("body = %s", body)
	}
	if gotBody != `{"page":2}` {
		t.Errorf("request body = %s, want {\"page\":2}", gotBody)
	}
}

func TestHTTP_NilParamsSendsEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		if len(b) != 0 {
			t.Errorf("body = %q, want empty", b)
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	tr, _ := NewHTTP(HTTPConfig{BaseURL: srv.URL})
	if _, err := tr.Fetch(context.Background(), "employees", nil); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
}

func TestHTTP_StatusErrors(t *testing.T) {
	tests := []struct {
		code      int
		temporary bool
	}{
		{code: http.StatusBadRequest, temporary: false},
		{code: http.StatusUnauthorized, temporary: false},
		{code: http.StatusTooManyRequests, temporary: true},
		{code: http.StatusInternalServerError, temporary: true},
		{code: http.StatusServiceUnavailable, temporary: true},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "Invalid transaction id", tt.code)
			}))
			defer srv.Close()

			tr, _ := NewHTTP(HTTPConfig{BaseURL: srv.URL})
			_, err := tr.Fetch(context.Background(), "setTransactionApproval", map[string]any{"transactionId": "x"})

			var se *StatusError
			if !errors.As(err, &se) {
				t.Fatalf("error = %v, want *StatusError", err)
			}
			if se.Code != tt.code || se.Endpoint != "setTransactionApproval" {
				t.Errorf("StatusError = %+v", se)
			}
			if se.Body != "Invalid transaction id" {
				t.Errorf("Body = %q", se.Body)
			}
			if Retryable(err) != tt.temporary {
				t.Errorf("Retryable() = %v, want %v", Retryable(err), tt.temporary)
			}
		})
	}
}

func TestHTTP_ResponseTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer srv.Close()

	tr, _ := NewHTTP(HTTPConfig{BaseURL: srv.URL, MaxResponseBytes: 16})
	if _, err := tr.Fetch(context.Background(), "employees", nil); err == nil || !strings.Contains(err.Error(), "exceeds") {
		t.Errorf("Fetch() error = %v, want size error", err)
	}
}

func TestHTTP_TokenError(t *testing.T) {
	tr, _ := NewHTTP(HTTPConfig{BaseURL: "http://127.0.0.1:1", Tokens: auth.StaticToken("")})
	if _, err := tr.Fetch(context.Background(), "employees", nil); !errors.Is(err, auth.ErrMissingCredentials) {
		t.Errorf("Fetch() error = %v, want ErrMissingCredentials", err)
	}
}

func TestHTTP_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	tr, _ := NewHTTP(HTTPConfig{BaseURL: srv.URL})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := tr.Fetch(ctx, "employees", nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Fetch() error = %v, want DeadlineExceeded", err)
	}
	if Retryable(err) {
		t.Error("deadline error reported retryable")
	}
}

func TestHTTP_EncodeFailure(t *testing.T) {
	tr, _ := NewHTTP(HTTPConfig{BaseURL: "http://127.0.0.1:1"})
	var unsupported *json.UnsupportedTypeError
	if _, err := tr.Fetch(context.Background(), "employees", map[string]any{"c": make(chan int)}); !errors.As(err, &unsupported) {
		t.Errorf("Fetch() error = %v, want UnsupportedTypeError", err)
	}
}
