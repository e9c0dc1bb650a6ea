package halkit_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halkit/halkit"
)

func TestCompilePattern(t *testing.T) {
	t.Parallel()

	t.Run("named_parameter", func(t *testing.T) {
		t.Parallel()

		p, err := halkit.CompilePattern("/users/:id")
		require.NoError(t, err)

		params, ok := p.Match("/users/42")
		require.True(t, ok)
		assert.Equal(t, map[string]string{"id": "42"}, params)
	})

	t.Run("extra_segment_does_not_match", func(t *testing.T) {
		t.Parallel()

		p, err := halkit.CompilePattern("/users/:id")
		require.NoError(t, err)

		_, ok := p.Match("/users/42/extra")
		assert.False(t, ok)
	})

	t.Run("parameters_are_raw_strings", func(t *testing.T) {
		t.Parallel()

		p, err := halkit.CompilePattern("/orders/:id")
		require.NoError(t, err)

		params, ok := p.Match("/orders/0042")
		require.True(t, ok)
		assert.Equal(t, "0042", params["id"])
	})

	t.Run("multiple_parameters", func(t *testing.T) {
		t.Parallel()

		p, err := halkit.CompilePattern("/users/:uid/posts/:pid")
		require.NoError(t, err)

		params, ok := p.Match("/users/7/posts/9")
		require.True(t, ok)
		assert.Equal(t, map[string]string{"uid": "7", "pid": "9"}, params)
	})

	t.Run("trailing_slash_on_template_is_normalized", func(t *testing.T) {
		t.Parallel()

		p, err := halkit.CompilePattern("/users/:id/")
		require.NoError(t, err)

		_, ok := p.Match("/users/42")
		assert.True(t, ok)
	})

	t.Run("trailing_slash_on_path_is_tolerated", func(t *testing.T) {
		t.Parallel()

		p, err := halkit.CompilePattern("/users/:id")
		require.NoError(t, err)

		_, ok := p.Match("/users/42/")
		assert.True(t, ok)
	})

	t.Run("root_path", func(t *testing.T) {
		t.Parallel()

		p, err := halkit.CompilePattern("/")
		require.NoError(t, err)

		_, ok := p.Match("/")
		assert.True(t, ok)
		_, ok = p.Match("/users")
		assert.False(t, ok)
	})

	t.Run("wildcard_captures_remainder", func(t *testing.T) {
		t.Parallel()

		p, err := halkit.CompilePattern("/files/*")
		require.NoError(t, err)

		params, ok := p.Match("/files/docs/report.txt")
		require.True(t, ok)
		assert.Equal(t, "docs/report.txt", params[halkit.WildcardKey])
	})

	t.Run("empty_wildcard_yields_no_entry", func(t *testing.T) {
		t.Parallel()

		p, err := halkit.CompilePattern("/files/*")
		require.NoError(t, err)

		params, ok := p.Match("/files")
		require.True(t, ok)
		_, present := params[halkit.WildcardKey]
		assert.False(t, present)
	})

	// Literal segments containing regexp metacharacters match themselves
	// and nothing else.
	t.Run("literal_metacharacters_are_escaped", func(t *testing.T) {
		t.Parallel()

		p, err := halkit.CompilePattern("/files/report.txt")
		require.NoError(t, err)

		_, ok := p.Match("/files/report.txt")
		assert.True(t, ok)

		_, ok = p.Match("/files/reportXtxt")
		assert.False(t, ok)
	})

	t.Run("precompiled_regexp_used_verbatim", func(t *testing.T) {
		t.Parallel()

		re := regexp.MustCompile(`^/ip/(?P<addr>\d+\.\d+\.\d+\.\d+)$`)
		p, err := halkit.CompilePattern(re)
		require.NoError(t, err)

		params, ok := p.Match("/ip/10.0.0.1")
		require.True(t, ok)
		assert.Equal(t, "10.0.0.1", params["addr"])

		// Verbatim means no trailing-slash tolerance is added.
		_, ok = p.Match("/ip/10.0.0.1/")
		assert.False(t, ok)
	})

	t.Run("pattern_passthrough", func(t *testing.T) {
		t.Parallel()

		p, err := halkit.CompilePattern("/users/:id")
		require.NoError(t, err)

		again, err := halkit.CompilePattern(p)
		require.NoError(t, err)
		assert.Same(t, p, again)
	})

	t.Run("rejects_pattern_without_leading_slash", func(t *testing.T) {
		t.Parallel()

		_, err := halkit.CompilePattern("users/:id")
		assert.ErrorIs(t, err, halkit.ErrInvalidPattern)
	})

	t.Run("rejects_wildcard_in_non_final_segment", func(t *testing.T) {
		t.Parallel()

		_, err := halkit.CompilePattern("/a/*/b")
		assert.ErrorIs(t, err, halkit.ErrInvalidPattern)
	})

	t.Run("rejects_empty_parameter_name", func(t *testing.T) {
		t.Parallel()

		_, err := halkit.CompilePattern("/users/:")
		assert.ErrorIs(t, err, halkit.ErrInvalidPattern)
	})

	t.Run("rejects_unsupported_type", func(t *testing.T) {
		t.Parallel()

		_, err := halkit.CompilePattern(42)
		assert.ErrorIs(t, err, halkit.ErrInvalidPattern)
	})

	t.Run("string_returns_original_template", func(t *testing.T) {
		t.Parallel()

		p, err := halkit.CompilePattern("/users/:id/")
		require.NoError(t, err)
		assert.Equal(t, "/users/:id/", p.String())
	})
}

func TestMustCompilePattern(t *testing.T) {
	t.Parallel()

	t.Run("panics_on_invalid_template", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			halkit.MustCompilePattern("no-slash")
		})
	})
}
