package clientip_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/halkit/halkit/clientip"
)

func TestGetIP(t *testing.T) {
	t.Parallel()

	t.Run("cloudflare_header_wins", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("CF-Connecting-IP", "203.0.113.5")
		r.Header.Set("X-Forwarded-For", "198.51.100.1")
		r.RemoteAddr = "10.0.0.1:1234"

		assert.Equal(t, "203.0.113.5", clientip.GetIP(r))
	})

	t.Run("forwarded_for_leftmost_entry", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.2, 10.0.0.3")

		assert.Equal(t, "198.51.100.1", clientip.GetIP(r))
	})

	t.Run("real_ip_fallback", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("X-Real-IP", "198.51.100.7")

		assert.Equal(t, "198.51.100.7", clientip.GetIP(r))
	})

	t.Run("remote_addr_when_no_headers", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "192.0.2.10:5678"

		assert.Equal(t, "192.0.2.10", clientip.GetIP(r))
	})

	t.Run("invalid_header_skipped", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("X-Forwarded-For", "not-an-ip")
		r.RemoteAddr = "192.0.2.10:5678"

		assert.Equal(t, "192.0.2.10", clientip.GetIP(r))
	})

	t.Run("unspecified_address_rejected", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("X-Forwarded-For", "0.0.0.0")
		r.RemoteAddr = "192.0.2.10:5678"

		assert.Equal(t, "192.0.2.10", clientip.GetIP(r))
	})

	t.Run("ipv6_normalized", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("X-Forwarded-For", "2001:DB8::1")

		assert.Equal(t, "2001:db8::1", clientip.GetIP(r))
	})

	t.Run("raw_remote_addr_when_unparseable", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "garbage"

		assert.Equal(t, "garbage", clientip.GetIP(r))
	})
}
