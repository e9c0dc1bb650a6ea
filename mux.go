package halkit

import (
	"fmt"
	"log/slog"
	"net/http"
)

// route is one entry of the ordered route table.
type route[C Context] struct {
	method  string
	pattern *Pattern
	handler HandlerFunc[C]
}

// mux is the private Router implementation. The route table is a plain
// ordered slice: matching walks it in registration order and the first
// route whose method and pattern both match wins. There is no scoring or
// most-specific-match heuristic, so registration order is the only
// precedence rule.
type mux[C Context] struct {
	routes      []route[C]
	middlewares []Middleware[C]

	errorHandler ErrorHandler[C]
	notFound     HandlerFunc[C]
	negotiator   *Negotiator
	hooks        Hooks
	newContext   func(http.ResponseWriter, *http.Request) C
	formatParam  string
	logger       *slog.Logger
}

// newMux creates a router instance with defaults filled in.
func newMux[C Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		hooks:       NopHooks{},
		formatParam: "format",
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.errorHandler == nil {
		m.errorHandler = m.defaultErrorHandler
	}
	if m.notFound == nil {
		m.notFound = defaultNotFoundHandler[C]
	}
	if m.negotiator == nil {
		m.negotiator = NewNegotiator()
		m.negotiator.Register(DefaultRenderers()...)
	}
	if m.newContext == nil {
		m.newContext = func(w http.ResponseWriter, r *http.Request) C {
			var zero C
			if _, ok := any(zero).(*RequestContext); ok {
				return any(NewRequestContext(w, r)).(C)
			}
			panic(ErrNoContextFactory)
		}
	}

	return m
}

// ServeHTTP implements http.Handler. It is the single dispatch boundary:
// every error that escapes the middleware chain, the handler, or
// rendering (panics included) ends up at the configured error handler.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ww := &responseWriter{ResponseWriter: w}
	ctx := m.newContext(ww, r)

	defer func() {
		if rec := recover(); rec != nil {
			if !ww.Written() {
				m.fail(ctx, toError(rec))
				return
			}
			m.logger.Error("panic after response write",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Any("error", toError(rec)),
			)
		}
	}()

	path := r.URL.Path
	if path == "" {
		path = "/"
	}

	rt, params := m.findRoute(r.Method, path)

	var terminal HandlerFunc[C]
	if rt == nil {
		terminal = m.notFound
	} else {
		if rc, ok := any(ctx).(routeCarrier); ok {
			rc.SetMatchedRoute(Route{Method: rt.method, Pattern: rt.pattern.String()}, params)
		}
		terminal = rt.handler
		m.hooks.BeforeRoute(ctx)
	}

	result, err := newChain(m.middlewares, m.negotiating(terminal), ctx).run()
	if err != nil {
		m.fail(ctx, err)
		return
	}

	if rt != nil {
		m.hooks.AfterRoute(ctx)
	}
	m.write(ctx, ww, result)
}

// findRoute walks the route table in registration order and returns the
// first structural+method match along with its extracted parameters.
func (m *mux[C]) findRoute(method, path string) (*route[C], map[string]string) {
	for i := range m.routes {
		rt := &m.routes[i]
		if rt.method != method && rt.method != MethodAny {
			continue
		}
		if params, ok := rt.pattern.Match(path); ok {
			return rt, params
		}
	}
	return nil, nil
}

// negotiating wraps a terminal handler so that a domain object result is
// turned into a Response via content negotiation before the chain
// unwinds. Already-built responses pass through untouched.
func (m *mux[C]) negotiating(h HandlerFunc[C]) HandlerFunc[C] {
	return func(ctx C) (any, error) {
		result, err := h(ctx)
		if err != nil {
			return nil, err
		}
		return m.materialize(ctx, result)
	}
}

// materialize resolves a handler result into a Response. A nil result
// becomes 204 No Content; anything that is not already a Response is a
// domain object and goes through the negotiator.
func (m *mux[C]) materialize(ctx C, result any) (Response, error) {
	switch v := result.(type) {
	case nil:
		return NoContent(), nil
	case Response:
		return v, nil
	}

	r := ctx.Request()
	renderer, err := m.negotiator.Negotiate(
		r.Header.Get("Accept"),
		r.URL.Query().Get(m.formatParam),
	)
	if err != nil {
		return nil, err
	}
	return renderer.Render(result)
}

// write renders the chain result. Middleware may have replaced the
// terminal result with a raw domain object, so materialize runs here as
// well; it is a no-op for responses.
func (m *mux[C]) write(ctx C, ww *responseWriter, result any) {
	resp, err := m.materialize(ctx, result)
	if err != nil {
		m.fail(ctx, err)
		return
	}
	if resp == nil {
		m.fail(ctx, ErrNilResponse)
		return
	}

	m.hooks.BeforeResponse(ctx)
	if err := resp.Render(ww, ctx.Request()); err != nil {
		if !ww.Written() {
			m.fail(ctx, err)
			return
		}
		m.logger.Error("response render failed after write",
			slog.String("method", ctx.Request().Method),
			slog.String("path", ctx.Request().URL.Path),
			slog.Any("error", err),
		)
	}
}

// fail routes an error through the hook dispatcher and the configured
// error handler.
func (m *mux[C]) fail(ctx C, err error) {
	m.hooks.BeforeError(ctx, err)
	m.errorHandler(ctx, err)
	m.hooks.AfterError(ctx, err)
}

// defaultErrorHandler maps known taxonomy errors to their own
// status/code and generalizes everything else to 500/INTERNAL_ERROR.
// The original error is never sent to the client, but it is logged with
// full details.
func (m *mux[C]) defaultErrorHandler(ctx C, err error) {
	if ww, ok := ctx.ResponseWriter().(*responseWriter); ok && ww.Written() {
		return
	}

	e := normalizeError(err)
	if e.Status >= http.StatusInternalServerError {
		m.logger.Error("request failed",
			slog.String("method", ctx.Request().Method),
			slog.String("path", ctx.Request().URL.Path),
			slog.String("code", e.Code),
			slog.Any("error", err),
		)
	}

	if rerr := ErrorResponse(e).Render(ctx.ResponseWriter(), ctx.Request()); rerr != nil {
		m.logger.Error("error response render failed", slog.Any("error", rerr))
	}
}

// defaultNotFoundHandler produces the structured 404 body.
func defaultNotFoundHandler[C Context](ctx C) (any, error) {
	r := ctx.Request()
	return nil, NotFound(fmt.Sprintf("no route matches %s %s", r.Method, r.URL.Path))
}

// Get registers a handler for GET requests.
func (m *mux[C]) Get(pattern any, handler HandlerFunc[C]) {
	m.handle(MethodGet, pattern, handler)
}

// Post registers a handler for POST requests.
func (m *mux[C]) Post(pattern any, handler HandlerFunc[C]) {
	m.handle(MethodPost, pattern, handler)
}

// Put registers a handler for PUT requests.
func (m *mux[C]) Put(pattern any, handler HandlerFunc[C]) {
	m.handle(MethodPut, pattern, handler)
}

// Patch registers a handler for PATCH requests.
func (m *mux[C]) Patch(pattern any, handler HandlerFunc[C]) {
	m.handle(MethodPatch, pattern, handler)
}

// Delete registers a handler for DELETE requests.
func (m *mux[C]) Delete(pattern any, handler HandlerFunc[C]) {
	m.handle(MethodDelete, pattern, handler)
}

// Head registers a handler for HEAD requests.
func (m *mux[C]) Head(pattern any, handler HandlerFunc[C]) {
	m.handle(MethodHead, pattern, handler)
}

// Options registers a handler for OPTIONS requests.
func (m *mux[C]) Options(pattern any, handler HandlerFunc[C]) {
	m.handle(MethodOptions, pattern, handler)
}

// Any registers a handler matching every HTTP method.
func (m *mux[C]) Any(pattern any, handler HandlerFunc[C]) {
	m.handle(MethodAny, pattern, handler)
}

// Method registers a handler for one named method.
func (m *mux[C]) Method(method string, pattern any, handler HandlerFunc[C]) {
	if _, ok := methodSet[method]; !ok {
		panic(fmt.Errorf("%w: %s", ErrInvalidMethod, method))
	}
	m.handle(method, pattern, handler)
}

// Use appends middleware. Middleware runs in registration order around
// every matched handler and the not-found handler.
func (m *mux[C]) Use(middlewares ...Middleware[C]) {
	m.middlewares = append(m.middlewares, middlewares...)
}

// Routes returns the registered routes in registration order.
func (m *mux[C]) Routes() []Route {
	routes := make([]Route, len(m.routes))
	for i, rt := range m.routes {
		routes[i] = Route{Method: rt.method, Pattern: rt.pattern.String()}
	}
	return routes
}

// handle appends one route to the table. Compilation failures panic:
// the table is built during bootstrap where a bad template is a
// programming error.
func (m *mux[C]) handle(method string, pattern any, handler HandlerFunc[C]) {
	if handler == nil {
		panic(ErrNilHandler)
	}
	p := MustCompilePattern(pattern)
	m.routes = append(m.routes, route[C]{method: method, pattern: p, handler: handler})
}
