// Package clientip extracts real client IP addresses from HTTP requests.
//
// Proxy headers are checked in priority order before falling back to the
// connection's remote address:
//  1. CF-Connecting-IP (Cloudflare)
//  2. DO-Connecting-IP (DigitalOcean)
//  3. X-Forwarded-For (leftmost entry)
//  4. X-Real-IP
//  5. RemoteAddr
//
// All candidates are validated with net.ParseIP and normalized; 0.0.0.0
// is rejected as it indicates no valid client address.
package clientip

import (
	"net"
	"net/http"
	"strings"
)

var proxyHeaders = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP returns the client IP for the request. It never panics; when no
// header carries a valid address and RemoteAddr cannot be parsed, the
// raw RemoteAddr is returned as-is.
func GetIP(r *http.Request) string {
	for _, header := range proxyHeaders {
		value := r.Header.Get(header)
		if value == "" {
			continue
		}
		// X-Forwarded-For may list several hops; the leftmost is the
		// original client.
		if idx := strings.IndexByte(value, ','); idx >= 0 {
			value = value[:idx]
		}
		if ip := normalize(value); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip := normalize(host); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

func normalize(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil || ip.IsUnspecified() {
		return ""
	}
	return ip.String()
}
