// Package halkit is a dispatch toolkit for hypermedia (HATEOAS) APIs. It
// provides a path-pattern router, an ordered middleware chain, and a
// content-negotiation engine that selects a renderer for domain objects
// returned by handlers.
package halkit

import (
	"net/http"
)

// HTTP methods accepted by the route table. MethodAny registers a route
// that matches every method.
const (
	MethodGet     = http.MethodGet
	MethodPost    = http.MethodPost
	MethodPut     = http.MethodPut
	MethodPatch   = http.MethodPatch
	MethodDelete  = http.MethodDelete
	MethodHead    = http.MethodHead
	MethodOptions = http.MethodOptions
	MethodAny     = "*"
)

// methodSet is the closed set of methods a route may be registered under.
var methodSet = map[string]struct{}{
	MethodGet:     {},
	MethodPost:    {},
	MethodPut:     {},
	MethodPatch:   {},
	MethodDelete:  {},
	MethodHead:    {},
	MethodOptions: {},
	MethodAny:     {},
}

// HandlerFunc handles one request. It returns either a Response, which is
// written as-is, or any other value, which is treated as a domain object
// and rendered through the router's content negotiator. A nil result with
// a nil error produces 204 No Content.
type HandlerFunc[C Context] func(ctx C) (any, error)

// Next invokes the remainder of the middleware chain, ending at the
// terminal handler, and returns its result.
type Next func() (any, error)

// Middleware wraps the rest of the chain. Code before the call to next
// runs on the way in, code after it runs on the way out in reverse
// registration order. A middleware that returns without calling next
// short-circuits the chain; an error returned by next may be recovered by
// returning a substitute result instead of propagating it.
type Middleware[C Context] func(ctx C, next Next) (any, error)

// ErrorHandler turns an error that escaped the middleware chain into a
// client-facing response.
type ErrorHandler[C Context] func(ctx C, err error)

// Route describes a registered route for introspection. Pattern is the
// original template string as passed at registration.
type Route struct {
	Method  string
	Pattern string
}

// Hooks receives side-effect callbacks at fixed points of the dispatch
// sequence. Implementations must not assume anything about the response
// state beyond what the callback name implies.
type Hooks interface {
	BeforeRoute(ctx Context)
	AfterRoute(ctx Context)
	BeforeError(ctx Context, err error)
	AfterError(ctx Context, err error)
	BeforeResponse(ctx Context)
}

// NopHooks is a Hooks implementation that does nothing.
type NopHooks struct{}

func (NopHooks) BeforeRoute(Context)        {}
func (NopHooks) AfterRoute(Context)         {}
func (NopHooks) BeforeError(Context, error) {}
func (NopHooks) AfterError(Context, error)  {}
func (NopHooks) BeforeResponse(Context)     {}

// Router dispatches requests to the first registered route whose method
// and pattern both match. The route table is append-only and must be
// fully built before the router starts serving traffic; registering
// routes concurrently with request handling is unsupported.
type Router[C Context] interface {
	http.Handler

	Get(pattern any, handler HandlerFunc[C])
	Post(pattern any, handler HandlerFunc[C])
	Put(pattern any, handler HandlerFunc[C])
	Patch(pattern any, handler HandlerFunc[C])
	Delete(pattern any, handler HandlerFunc[C])
	Head(pattern any, handler HandlerFunc[C])
	Options(pattern any, handler HandlerFunc[C])

	// Any registers a handler that matches every HTTP method.
	Any(pattern any, handler HandlerFunc[C])

	// Method registers a handler for a single named method.
	Method(method string, pattern any, handler HandlerFunc[C])

	// Use appends middleware. Middleware runs in registration order
	// around every matched handler.
	Use(middlewares ...Middleware[C])

	// Routes returns the registered routes in registration order.
	Routes() []Route
}

// NewRouter creates a router. The zero configuration serves *RequestContext
// contexts, renders errors as structured JSON, and negotiates with the
// default renderer registry.
func NewRouter[C Context](opts ...Option[C]) Router[C] {
	return newMux[C](opts...)
}
