package auth

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Middleware returns an http.Handler that enforces API key authentication on
// every incoming request before delegating to next.
//
// Behaviour:
//   - If mode != "apikey" or key == "", next is returned untouched
//     (pass-through).
//   - Otherwise the middleware reads the value of header from the request
//     and compares it to key.
//   - A missing, empty, or incorrect key returns 401 with a JSON body.
func Middleware(mode, header, key string, next http.Handler) http.Handler {
	// Non-apikey modes or unconfigured key → allow everything.
	if mode != "apikey" || key == "" {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(header) != key {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "invalid api key"}) //nolint:errcheck
			return
		}
		next.ServeHTTP(w, r)
	})
}
