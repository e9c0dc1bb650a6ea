package halkit

// chain executes middleware as nested layers around a terminal handler.
// It is a cursor over the middleware slice rather than a pre-built nest
// of closures: each call to next advances the cursor by one, and the
// final next invokes the terminal handler. Ordering is the onion model:
// for middleware [A, B, C], pre-next code runs A, B, C, then the
// terminal handler, then post-next code runs C, B, A.
//
// A chain is single-use and bound to one request.
type chain[C Context] struct {
	middlewares []Middleware[C]
	terminal    HandlerFunc[C]
	ctx         C
	index       int
}

func newChain[C Context](middlewares []Middleware[C], terminal HandlerFunc[C], ctx C) *chain[C] {
	return &chain[C]{middlewares: middlewares, terminal: terminal, ctx: ctx}
}

// run advances the cursor to the next middleware, or the terminal handler
// once the middleware list is exhausted. Errors are returned to the
// calling layer; a middleware that does not call next short-circuits
// everything downstream, including the terminal handler.
func (c *chain[C]) run() (any, error) {
	if c.index >= len(c.middlewares) {
		return c.terminal(c.ctx)
	}

	mw := c.middlewares[c.index]
	c.index++

	called := false
	next := func() (any, error) {
		if called {
			return nil, ErrNextCalled
		}
		called = true
		return c.run()
	}
	return mw(c.ctx, next)
}
