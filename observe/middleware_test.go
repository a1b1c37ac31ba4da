package observe

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/codes"
)

func TestMiddleware_PassesThrough(t *testing.T) {
	tracer, sr := newRecordingTracer()
	metrics, reader := newTestMetrics(t)
	var buf bytes.Buffer
	mw := NewMiddleware(tracer, metrics, NewLoggerWithWriter("debug", &buf))

	calls := 0
	fn := mw.Wrap(func(_ context.Context, meta RequestMeta, params any) ([]byte, error) {
		calls++
		if meta.Endpoint != "employees" {
			t.Errorf("endpoint = %q", meta.Endpoint)
		}
		return []byte(`[]`), nil
	})

	out, err := fn(context.Background(), RequestMeta{Endpoint: "employees"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "[]" || calls != 1 {
		t.Errorf("out = %q, calls = %d", out, calls)
	}

	if len(sr.Ended()) != 1 {
		t.Errorf("expected 1 span, got %d", len(sr.Ended()))
	}
	if got := sumOf(t, collect(t, reader), "fetch.requests"); got != 1 {
		t.Errorf("fetch.requests = %d, want 1", got)
	}
	entries := decodeLines(t, &buf)
	if len(entries) != 1 || entries[0]["message"] != "round trip completed" {
		t.Errorf("unexpected log entries: %v", entries)
	}
}

func TestMiddleware_PropagatesErrorUnchanged(t *testing.T) {
	tracer, sr := newRecordingTracer()
	var buf bytes.Buffer
	mw := NewMiddleware(tracer, nil, NewLoggerWithWriter("info", &buf))

	want := errors.New("network down")
	fn := mw.Wrap(func(context.Context, RequestMeta, any) ([]byte, error) {
		return nil, want
	})

	_, err := fn(context.Background(), RequestMeta{Endpoint: "employees"}, nil)
	if err != want {
		t.Fatalf("err = %v, want the original error", err)
	}
	if sr.Ended()[0].Status().Code != codes.Error {
		t.Error("span should carry error status")
	}
	entries := decodeLines(t, &buf)
	if len(entries) != 1 || entries[0]["level"] != "warn" {
		t.Errorf("unexpected log entries: %v", entries)
	}
}

func TestMiddlewareFromObserver_Nil(t *testing.T) {
	if _, err := MiddlewareFromObserver(nil); !errors.Is(err, ErrNilObserver) {
		t.Errorf("err = %v, want ErrNilObserver", err)
	}
}
