package halkit

import (
	"context"
	"net/http"
	"time"
)

// Context is the per-request context contract. It carries the raw request
// and writer, path parameters extracted by the matched route, the matched
// route metadata, and an open state bag for middleware-to-handler
// communication. A Context is created fresh for every request and must
// not be shared across requests.
type Context interface {
	context.Context

	Request() *http.Request
	ResponseWriter() http.ResponseWriter

	// Param returns the named path parameter, or "" if absent.
	// Parameters are always strings; no type coercion is performed.
	Param(key string) string

	// Params returns all path parameters of the matched route.
	Params() map[string]string

	// Set stores a value in the request-scoped state bag.
	Set(key, val any)

	// Get retrieves a value stored with Set.
	Get(key any) (any, bool)

	// Route returns the matched route's method and original template.
	Route() Route
}

// routeCarrier is implemented by contexts that accept matched-route
// metadata from the router. *RequestContext implements it; custom
// context types can embed *RequestContext to inherit it.
type routeCarrier interface {
	SetMatchedRoute(route Route, params map[string]string)
}

// RequestContext is the default Context implementation. It delegates the
// context.Context methods to the request's context, except that Value
// consults the state bag first.
type RequestContext struct {
	w      http.ResponseWriter
	r      *http.Request
	params map[string]string
	state  map[any]any
	route  Route
}

// NewRequestContext creates a RequestContext for one request.
func NewRequestContext(w http.ResponseWriter, r *http.Request) *RequestContext {
	return &RequestContext{w: w, r: r}
}

// Deadline delegates to the request's context.
func (c *RequestContext) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

// Done delegates to the request's context.
func (c *RequestContext) Done() <-chan struct{} {
	return c.r.Context().Done()
}

// Err delegates to the request's context.
func (c *RequestContext) Err() error {
	return c.r.Context().Err()
}

// Value returns a value from the state bag if present, falling back to
// the request's context.
func (c *RequestContext) Value(key any) any {
	if v, ok := c.state[key]; ok {
		return v
	}
	return c.r.Context().Value(key)
}

// Request returns the *http.Request being handled.
func (c *RequestContext) Request() *http.Request { return c.r }

// ResponseWriter returns the response writer for this request.
func (c *RequestContext) ResponseWriter() http.ResponseWriter { return c.w }

// Param returns the value of the named path parameter.
func (c *RequestContext) Param(key string) string {
	if c.params == nil {
		return ""
	}
	return c.params[key]
}

// Params returns the path parameters of the matched route.
func (c *RequestContext) Params() map[string]string { return c.params }

// Set stores a request-scoped value.
func (c *RequestContext) Set(key, val any) {
	if c.state == nil {
		c.state = make(map[any]any)
	}
	c.state[key] = val
}

// Get retrieves a request-scoped value stored with Set.
func (c *RequestContext) Get(key any) (any, bool) {
	v, ok := c.state[key]
	return v, ok
}

// Route returns the matched route metadata. The zero Route is returned
// when no route matched (e.g. inside a not-found handler).
func (c *RequestContext) Route() Route { return c.route }

// SetMatchedRoute records the matched route and its extracted parameters.
// The router calls this once, before the middleware chain runs.
func (c *RequestContext) SetMatchedRoute(route Route, params map[string]string) {
	c.route = route
	c.params = params
}
