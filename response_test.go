package halkit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halkit/halkit"
)

func render(t *testing.T, resp halkit.Response) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	require.NoError(t, resp.Render(w, req))
	return w
}

func TestResponses(t *testing.T) {
	t.Parallel()

	t.Run("string_response", func(t *testing.T) {
		t.Parallel()

		w := render(t, halkit.String("hello"))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "hello", w.Body.String())
		assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	})

	t.Run("string_with_status", func(t *testing.T) {
		t.Parallel()

		w := render(t, halkit.StringWithStatus("created", http.StatusCreated))
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("html_response", func(t *testing.T) {
		t.Parallel()

		w := render(t, halkit.HTML("<h1>x</h1>"))
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Equal(t, "<h1>x</h1>", w.Body.String())
	})

	t.Run("bytes_response", func(t *testing.T) {
		t.Parallel()

		w := render(t, halkit.Bytes([]byte("raw"), "application/octet-stream"))
		assert.Equal(t, "application/octet-stream", w.Header().Get("Content-Type"))
		assert.Equal(t, "raw", w.Body.String())
	})

	t.Run("no_content_has_empty_body", func(t *testing.T) {
		t.Parallel()

		w := render(t, halkit.NoContent())
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("not_modified_has_empty_body", func(t *testing.T) {
		t.Parallel()

		w := render(t, halkit.NotModified())
		assert.Equal(t, http.StatusNotModified, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("status_response", func(t *testing.T) {
		t.Parallel()

		w := render(t, halkit.Status(http.StatusAccepted))
		assert.Equal(t, http.StatusAccepted, w.Code)
	})

	t.Run("response_func_adapter", func(t *testing.T) {
		t.Parallel()

		resp := halkit.ResponseFunc(func(w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusTeapot)
			return nil
		})
		w := render(t, resp)
		assert.Equal(t, http.StatusTeapot, w.Code)
	})
}
