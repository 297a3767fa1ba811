// Package auth provides API-key authentication middleware for the HTTP API.
//
// Middleware(mode, header, key, next) validates the API key carried in the
// named request header.
//
// When mode != "apikey" or key == "", all requests pass through (useful for
// local development with auth disabled — and the default configuration).
// When the key is incorrect or absent, the middleware responds 401 immediately.
package auth
