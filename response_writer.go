package halkit

import "net/http"

// responseWriter wraps http.ResponseWriter to track whether a response
// has been written. The router uses it to suppress double writes when an
// error occurs after rendering has started.
type responseWriter struct {
	http.ResponseWriter
	written bool
	status  int
}

func (w *responseWriter) WriteHeader(status int) {
	if !w.written {
		w.status = status
		w.written = true
		w.ResponseWriter.WriteHeader(status)
	}
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Written reports whether the response header has been written.
func (w *responseWriter) Written() bool { return w.written }

// Status returns the written status code, or 0 if nothing was written.
func (w *responseWriter) Status() int { return w.status }

// Flush implements http.Flusher when the underlying writer supports it.
func (w *responseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
