package approvals

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/jonwraymond/fetchcache/cache"
)

// maxRequestBytes caps request bodies accepted by Handler.
const maxRequestBytes = 1 << 20

// Handler serves b over HTTP: POST /<endpoint> with a JSON params body.
//
// Status codes: 400 for ErrInvalidParams and ErrNotFound, 404 for unknown
// endpoints, 503 for ErrUnavailable.
func Handler(b *Backend) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var params any
		if len(body) > 0 {
			params = rawParams(body)
		}

		endpoint := cache.Endpoint(strings.TrimPrefix(r.URL.Path, "/"))
		out, err := b.Fetch(r.Context(), endpoint, params)
		if err != nil {
			http.Error(w, err.Error(), statusFor(err))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(out)
	})
}

// rawParams passes a request body through bind unchanged.
type rawParams []byte

func (p rawParams) MarshalJSON() ([]byte, error) { return p, nil }

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidParams), errors.Is(err, ErrNotFound):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnknownEndpoint):
		return http.StatusNotFound
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
