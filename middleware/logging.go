package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/halkit/halkit"
)

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	// Skip skips the middleware for specific requests.
	Skip func(ctx halkit.Context) bool
	// Logger is the slog logger to use (default: slog.Default()).
	Logger *slog.Logger
	// Level for completed-request log lines (default: slog.LevelInfo).
	// Failures are logged at error level regardless.
	Level slog.Level
	// SlowRequestThreshold raises slow requests to warning level
	// (default: 5s).
	SlowRequestThreshold time.Duration
}

// Logging creates a request logging middleware with default configuration.
func Logging[C halkit.Context]() halkit.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{})
}

// LoggingWithLogger creates a logging middleware using the given logger.
func LoggingWithLogger[C halkit.Context](log *slog.Logger) halkit.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{Logger: log})
}

// LoggingWithConfig creates a request logging middleware with custom
// configuration. One line is logged per request once its response has
// been written, with the status captured from the response stream.
func LoggingWithConfig[C halkit.Context](cfg LoggingConfig) halkit.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Level == 0 {
		cfg.Level = slog.LevelInfo
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}

	return func(ctx C, next halkit.Next) (any, error) {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return next()
		}

		start := time.Now()
		req := ctx.Request()

		attrs := []slog.Attr{
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.String("remote_addr", req.RemoteAddr),
		}
		if id, ok := GetRequestID(ctx); ok {
			attrs = append(attrs, slog.String("request_id", id))
		}

		result, err := next()
		if err != nil {
			attrs = append(attrs,
				slog.Duration("duration", time.Since(start)),
				slog.Any("error", err),
			)
			cfg.Logger.LogAttrs(req.Context(), slog.LevelError, "request failed", attrs...)
			return result, err
		}

		resp, ok := result.(halkit.Response)
		if !ok {
			// A domain object or a decorated result; the router renders
			// it later, so log without a status.
			attrs = append(attrs, slog.Duration("duration", time.Since(start)))
			cfg.Logger.LogAttrs(req.Context(), cfg.Level, "request completed", attrs...)
			return result, nil
		}

		// Wrap the response so the final status and latency are logged
		// after rendering.
		logged := halkit.ResponseFunc(func(w http.ResponseWriter, r *http.Request) error {
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			rerr := resp.Render(sw, r)
			duration := time.Since(start)

			attrs := append(attrs,
				slog.Int("status", sw.status),
				slog.Int("bytes_out", sw.size),
				slog.Duration("duration", duration),
			)

			level := cfg.Level
			switch {
			case sw.status >= http.StatusInternalServerError:
				level = slog.LevelError
			case sw.status >= http.StatusBadRequest:
				level = slog.LevelWarn
			case duration > cfg.SlowRequestThreshold:
				level = slog.LevelWarn
				attrs = append(attrs, slog.Bool("slow_request", true))
			}

			cfg.Logger.LogAttrs(r.Context(), level, "request completed", attrs...)
			return rerr
		})
		return logged, nil
	}
}

// statusWriter captures the status code and size of a rendered response.
type statusWriter struct {
	http.ResponseWriter
	status  int
	size    int
	written bool
}

func (w *statusWriter) WriteHeader(status int) {
	if !w.written {
		w.status = status
		w.written = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.written = true
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}
