package secret

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type stubProvider struct {
	name   string
	values map[string]string
	err    error
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Resolve(_ context.Context, ref string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.values[ref], nil
}

func TestParseSecretRef(t *testing.T) {
	provider, ref, ok := ParseSecretRef("secretref:file:/run/secrets/key")
	if !ok {
		t.Fatalf("expected secretref to parse")
	}
	if provider != "file" || ref != "/run/secrets/key" {
		t.Fatalf("unexpected values: %q %q", provider, ref)
	}

	for _, bad := range []string{"not-a-secretref", "secretref:", "secretref:env", "secretref::X", "secretref:env:"} {
		if _, _, ok := ParseSecretRef(bad); ok {
			t.Errorf("ParseSecretRef(%q) ok = true", bad)
		}
	}
}

func TestResolver_ResolveValue(t *testing.T) {
	t.Setenv("FETCHCACHE_TEST_HOST", "cache")
	stub := &stubProvider{name: "stub", values: map[string]string{"alpha": "one", "beta": "two", "empty": ""}}
	r := NewResolver(true, stub)

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{name: "plain", in: "localhost:6379", want: "localhost:6379"},
		{name: "env only", in: "${FETCHCACHE_TEST_HOST}:6379", want: "cache:6379"},
		{name: "full ref", in: "secretref:stub:alpha", want: "one"},
		{name: "inline refs", in: "Bearer secretref:stub:alpha and secretref:stub:beta", want: "Bearer one and two"},
		{name: "inline before at", in: "redis://:secretref:stub:alpha@${FETCHCACHE_TEST_HOST}", want: "redis://:one@cache"},
		{name: "unknown provider", in: "secretref:vault:x", wantErr: ErrUnknownProvider},
		{name: "strict empty", in: "secretref:stub:empty", wantErr: ErrEmptySecret},
		{name: "malformed", in: "secretref:", wantErr: ErrMalformedRef},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ResolveValue(context.Background(), tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ResolveValue() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveValue() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveValue() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolver_ProviderErrorPropagates(t *testing.T) {
	boom := errors.New("provider down")
	r := NewResolver(false, &stubProvider{name: "stub", err: boom})

	if _, err := r.ResolveValue(context.Background(), "secretref:stub:x"); !errors.Is(err, boom) {
		t.Errorf("ResolveValue() error = %v, want %v", err, boom)
	}
}

func TestResolver_Nil(t *testing.T) {
	var r *Resolver
	got, err := r.ResolveValue(context.Background(), "secretref:env:X")
	if err != nil {
		t.Fatalf("ResolveValue() error = %v", err)
	}
	if got != "secretref:env:X" {
		t.Errorf("nil resolver changed value: %q", got)
	}
}

func TestResolver_ResolveAll(t *testing.T) {
	t.Setenv("FETCHCACHE_TEST_KEY", "k")
	r := DefaultResolver("")

	a, b, empty := "secretref:env:FETCHCACHE_TEST_KEY", "${FETCHCACHE_TEST_KEY}-2", ""
	if err := r.ResolveAll(context.Background(), &a, &b, &empty, nil); err != nil {
		t.Fatalf("ResolveAll() error = %v", err)
	}
	if a != "k" || b != "k-2" || empty != "" {
		t.Errorf("ResolveAll() = %q %q %q", a, b, empty)
	}
}

func TestFileProvider(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "signing_key"), []byte("s3cr3t\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	p := FileProvider{Dir: dir}
	ctx := context.Background()

	got, err := p.Resolve(ctx, "signing_key")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "s3cr3t" {
		t.Errorf("Resolve() = %q, want s3cr3t", got)
	}

	if got, err := p.Resolve(ctx, filepath.Join(dir, "signing_key")); err != nil || got != "s3cr3t" {
		t.Errorf("Resolve(abs) = %q, %v", got, err)
	}
	if _, err := p.Resolve(ctx, "missing"); !errors.Is(err, ErrSecretNotFound) {
		t.Errorf("Resolve(missing) error = %v, want ErrSecretNotFound", err)
	}
}

func TestEnvProvider(t *testing.T) {
	t.Setenv("FETCHCACHE_TEST_SECRET", "v")
	ctx := context.Background()

	if got, err := (EnvProvider{}).Resolve(ctx, "FETCHCACHE_TEST_SECRET"); err != nil || got != "v" {
		t.Errorf("Resolve() = %q, %v", got, err)
	}
	if _, err := (EnvProvider{}).Resolve(ctx, "FETCHCACHE_TEST_UNSET"); !errors.Is(err, ErrSecretNotFound) {
		t.Errorf("Resolve(unset) error = %v, want ErrSecretNotFound", err)
	}
}
