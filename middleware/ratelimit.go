package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/halkit/halkit"
	"github.com/halkit/halkit/clientip"
)

const (
	// DefaultRate is the sustained per-key request rate applied when the
	// config leaves Rate unset.
	DefaultRate = 10
	// DefaultBurst is the per-key burst size applied when the config
	// leaves Burst unset.
	DefaultBurst = 20
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// Rate is the sustained request rate per key, in requests per second
	// (default: 10).
	Rate float64
	// Burst is the maximum burst size per key (default: 20).
	Burst int
	// KeyFunc derives the limiter key from a request (default: client IP
	// via proxy headers, falling back to the remote address).
	KeyFunc func(r *http.Request) string
	// CleanupInterval controls how often idle limiters are pruned
	// (default: 1m).
	CleanupInterval time.Duration
	// MaxIdle removes limiters idle longer than this (default: 5m).
	MaxIdle time.Duration
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit creates a per-key token bucket rate limiter. Requests over
// the limit fail with a 429 taxonomy error, which the router renders as
// the structured error body.
func RateLimit[C halkit.Context](cfg RateLimitConfig) halkit.Middleware[C] {
	if cfg.Rate <= 0 {
		cfg.Rate = DefaultRate
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultBurst
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = clientip.GetIP
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Minute
	}
	if cfg.MaxIdle <= 0 {
		cfg.MaxIdle = 5 * time.Minute
	}

	var (
		mu          sync.Mutex
		limiters    = make(map[string]*limiterEntry)
		lastCleanup = time.Now()
	)

	return func(ctx C, next halkit.Next) (any, error) {
		key := cfg.KeyFunc(ctx.Request())
		now := time.Now()

		mu.Lock()
		if now.Sub(lastCleanup) >= cfg.CleanupInterval {
			for k, entry := range limiters {
				if now.Sub(entry.lastSeen) > cfg.MaxIdle {
					delete(limiters, k)
				}
			}
			lastCleanup = now
		}

		entry, ok := limiters[key]
		if !ok {
			entry = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(cfg.Rate), cfg.Burst)}
			limiters[key] = entry
		}
		entry.lastSeen = now
		allowed := entry.limiter.Allow()
		mu.Unlock()

		if !allowed {
			ctx.ResponseWriter().Header().Set("Retry-After", "1")
			return nil, halkit.APIError("rate limit exceeded").
				WithStatus(http.StatusTooManyRequests).
				WithCode("RATE_LIMITED")
		}
		return next()
	}
}
