package halkit

import (
	"log/slog"
	"net/http"
)

// Option configures a router at construction time.
type Option[C Context] func(*mux[C])

// WithErrorHandler replaces the default error handler, which renders the
// structured JSON error body.
func WithErrorHandler[C Context](h ErrorHandler[C]) Option[C] {
	return func(m *mux[C]) {
		m.errorHandler = h
	}
}

// WithNotFoundHandler replaces the default 404 handler. The handler runs
// inside the middleware chain like any matched route handler.
func WithNotFoundHandler[C Context](h HandlerFunc[C]) Option[C] {
	return func(m *mux[C]) {
		m.notFound = h
	}
}

// WithNegotiator sets the content negotiator used for domain-object
// results. The default negotiator carries the standard renderer set.
func WithNegotiator[C Context](n *Negotiator) Option[C] {
	return func(m *mux[C]) {
		m.negotiator = n
	}
}

// WithHooks sets the side-effect hook dispatcher.
func WithHooks[C Context](h Hooks) Option[C] {
	return func(m *mux[C]) {
		if h != nil {
			m.hooks = h
		}
	}
}

// WithContextFactory sets the factory producing the per-request context.
// Required when C is not *RequestContext.
func WithContextFactory[C Context](fn func(http.ResponseWriter, *http.Request) C) Option[C] {
	return func(m *mux[C]) {
		m.newContext = fn
	}
}

// WithFormatParam sets the query parameter consulted for an explicit
// format override (default "format").
func WithFormatParam[C Context](name string) Option[C] {
	return func(m *mux[C]) {
		if name != "" {
			m.formatParam = name
		}
	}
}

// WithLogger sets the logger for server-side error reporting.
func WithLogger[C Context](log *slog.Logger) Option[C] {
	return func(m *mux[C]) {
		if log != nil {
			m.logger = log
		}
	}
}
