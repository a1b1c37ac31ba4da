package auth

import "net/http"

// RequireBearer is HTTP middleware that rejects requests without a valid
// bearer token and attaches the verified Identity to the request context.
//
// Usage:
//
//	mux.Handle("/", auth.RequireBearer(verifier, backendHandler))
func RequireBearer(v *Verifier, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := BearerToken(r.Header.Get("Authorization"))
		if !ok {
			w.Header().Set("WWW-Authenticate", `Bearer realm="fetchcache"`)
			http.Error(w, ErrMissingCredentials.Error(), http.StatusUnauthorized)
			return
		}

		id, err := v.Verify(token)
		if err != nil {
			w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}
