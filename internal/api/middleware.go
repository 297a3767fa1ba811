package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/credatlas/credatlas/internal/metrics"
)

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// routePattern collapses a request path to its route pattern so metric label
// cardinality stays bounded regardless of how many IDs — or how many probing
// 404 paths — get requested.
func routePattern(path string) string {
	switch path {
	case "/", "/records", "/records/", "/stats", "/metrics":
		return path
	}
	if strings.HasPrefix(path, "/records/") {
		return "/records/{insid}"
	}
	return "other"
}

// instrument counts every response in reg by route pattern and status code.
func instrument(reg *metrics.Registry, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		reg.IncRequest(routePattern(r.URL.Path), rec.status)
	})
}

// accessLog logs one line per request: method, path, status, duration.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
