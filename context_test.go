package halkit_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/halkit/halkit"
)

func TestRequestContext(t *testing.T) {
	t.Parallel()

	t.Run("delegates_to_request_context", func(t *testing.T) {
		t.Parallel()

		type ctxKey struct{}
		base := context.WithValue(context.Background(), ctxKey{}, "from request")
		req := httptest.NewRequest("GET", "/", nil).WithContext(base)
		ctx := halkit.NewRequestContext(httptest.NewRecorder(), req)

		assert.Equal(t, "from request", ctx.Value(ctxKey{}))
		assert.NoError(t, ctx.Err())
	})

	t.Run("state_bag_shadows_request_context", func(t *testing.T) {
		t.Parallel()

		type ctxKey struct{}
		base := context.WithValue(context.Background(), ctxKey{}, "outer")
		req := httptest.NewRequest("GET", "/", nil).WithContext(base)
		ctx := halkit.NewRequestContext(httptest.NewRecorder(), req)

		ctx.Set(ctxKey{}, "inner")
		assert.Equal(t, "inner", ctx.Value(ctxKey{}))

		v, ok := ctx.Get(ctxKey{})
		assert.True(t, ok)
		assert.Equal(t, "inner", v)
	})

	t.Run("missing_state_key", func(t *testing.T) {
		t.Parallel()

		ctx := halkit.NewRequestContext(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
		_, ok := ctx.Get("nope")
		assert.False(t, ok)
	})

	t.Run("params_default_to_empty", func(t *testing.T) {
		t.Parallel()

		ctx := halkit.NewRequestContext(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, "", ctx.Param("id"))
		assert.Empty(t, ctx.Params())
	})

	t.Run("matched_route_is_recorded", func(t *testing.T) {
		t.Parallel()

		ctx := halkit.NewRequestContext(httptest.NewRecorder(), httptest.NewRequest("GET", "/users/1", nil))
		ctx.SetMatchedRoute(
			halkit.Route{Method: "GET", Pattern: "/users/:id"},
			map[string]string{"id": "1"},
		)

		assert.Equal(t, "1", ctx.Param("id"))
		assert.Equal(t, "/users/:id", ctx.Route().Pattern)
		assert.Equal(t, "GET", ctx.Route().Method)
	})
}
