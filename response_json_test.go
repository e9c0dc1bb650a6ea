package halkit_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/halkit/halkit"
)

func TestJSONResponses(t *testing.T) {
	t.Parallel()

	t.Run("json_encodes_value", func(t *testing.T) {
		t.Parallel()

		w := render(t, halkit.JSON(map[string]string{"status": "ok"}))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})

	t.Run("json_with_status", func(t *testing.T) {
		t.Parallel()

		w := render(t, halkit.JSONWithStatus(map[string]int{"id": 7}, http.StatusCreated))
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("nil_data_defaults_to_204", func(t *testing.T) {
		t.Parallel()

		w := render(t, halkit.JSONWithStatus(nil, 0))
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("304_suppresses_body", func(t *testing.T) {
		t.Parallel()

		w := render(t, halkit.JSONWithStatus(map[string]string{"x": "y"}, http.StatusNotModified))
		assert.Equal(t, http.StatusNotModified, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("json_as_custom_media_type", func(t *testing.T) {
		t.Parallel()

		w := render(t, halkit.JSONAs(map[string]string{"x": "y"}, halkit.MediaHAL))
		assert.Contains(t, w.Header().Get("Content-Type"), "application/hal+json")
	})

	t.Run("error_response_envelope", func(t *testing.T) {
		t.Parallel()

		e := halkit.Validation("bad").WithDetails(map[string]any{"field": "name"})
		w := render(t, halkit.ErrorResponse(e))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{
			"error": {
				"status": 400,
				"code": "VALIDATION_ERROR",
				"message": "bad",
				"details": {"field": "name"}
			}
		}`, w.Body.String())
	})
}
