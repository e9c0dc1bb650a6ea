package halkit

import (
	"net/http"
)

// Response renders an HTTP response. Implementations set headers, status,
// and body; rendering errors are routed to the router's error handler
// when nothing has been written yet.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// ResponseFunc adapts a function to the Response interface. Useful for
// middleware that needs to decorate a response on the way out.
type ResponseFunc func(w http.ResponseWriter, r *http.Request) error

// Render implements Response.
func (f ResponseFunc) Render(w http.ResponseWriter, r *http.Request) error {
	return f(w, r)
}

// baseResponse is a Response holding pre-rendered bytes.
type baseResponse struct {
	content     []byte
	statusCode  int
	contentType string
}

// Render implements Response.
func (r baseResponse) Render(w http.ResponseWriter, req *http.Request) error {
	if r.contentType != "" {
		w.Header().Set("Content-Type", r.contentType)
	}

	status := r.statusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)

	if len(r.content) > 0 && bodyAllowed(status) {
		_, err := w.Write(r.content)
		return err
	}
	return nil
}

// bodyAllowed reports whether the status code permits a response body.
func bodyAllowed(status int) bool {
	return status != http.StatusNoContent && status != http.StatusNotModified
}

// String creates a text/plain response with 200 OK status.
func String(content string) Response {
	return StringWithStatus(content, http.StatusOK)
}

// StringWithStatus creates a text/plain response with a custom status.
func StringWithStatus(content string, status int) Response {
	return baseResponse{
		content:     []byte(content),
		statusCode:  status,
		contentType: MediaText + "; charset=utf-8",
	}
}

// HTML creates a text/html response with 200 OK status.
func HTML(content string) Response {
	return HTMLWithStatus(content, http.StatusOK)
}

// HTMLWithStatus creates a text/html response with a custom status.
func HTMLWithStatus(content string, status int) Response {
	return baseResponse{
		content:     []byte(content),
		statusCode:  status,
		contentType: MediaHTML + "; charset=utf-8",
	}
}

// Bytes creates a response with a custom content type.
func Bytes(content []byte, contentType string) Response {
	return BytesWithStatus(content, contentType, http.StatusOK)
}

// BytesWithStatus creates a response with a custom content type and status.
func BytesWithStatus(content []byte, contentType string, status int) Response {
	return baseResponse{
		content:     content,
		statusCode:  status,
		contentType: contentType,
	}
}

// NoContent creates a 204 No Content response.
func NoContent() Response {
	return baseResponse{statusCode: http.StatusNoContent}
}

// NotModified creates a 304 Not Modified response.
func NotModified() Response {
	return baseResponse{statusCode: http.StatusNotModified}
}

// Status creates an empty response with the given status code.
func Status(code int) Response {
	return baseResponse{statusCode: code}
}
