// Package middleware provides halkit middleware for cross-cutting
// concerns: request IDs, request/response logging, and rate limiting.
package middleware

import (
	"github.com/google/uuid"

	"github.com/halkit/halkit"
)

// requestIDKey is the state-bag key for the request ID.
type requestIDKey struct{}

// RequestIDConfig configures the request ID middleware.
type RequestIDConfig struct {
	// Skip skips the middleware for specific requests.
	Skip func(ctx halkit.Context) bool
	// Generator creates new request IDs (default: UUID v4).
	Generator func() string
	// HeaderName is the response header carrying the ID (default: "X-Request-ID").
	HeaderName string
	// UseExisting reuses an incoming request ID header when present.
	UseExisting bool
}

// RequestID creates a request ID middleware with default configuration:
// a fresh UUID per request, exposed in the context state bag and the
// X-Request-ID response header.
func RequestID[C halkit.Context]() halkit.Middleware[C] {
	return RequestIDWithConfig[C](RequestIDConfig{})
}

// RequestIDWithConfig creates a request ID middleware with custom
// configuration.
func RequestIDWithConfig[C halkit.Context](cfg RequestIDConfig) halkit.Middleware[C] {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Request-ID"
	}
	if cfg.Generator == nil {
		cfg.Generator = func() string { return uuid.New().String() }
	}

	return func(ctx C, next halkit.Next) (any, error) {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return next()
		}

		var id string
		if cfg.UseExisting {
			id = ctx.Request().Header.Get(cfg.HeaderName)
		}
		if id == "" {
			id = cfg.Generator()
		}

		ctx.Set(requestIDKey{}, id)
		ctx.ResponseWriter().Header().Set(cfg.HeaderName, id)

		return next()
	}
}

// GetRequestID retrieves the request ID assigned by the middleware.
func GetRequestID(ctx halkit.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok
}
