package halkit

import (
	"encoding/json"
	"net/http"
)

// jsonResponse encodes a value as JSON directly to the response writer.
// The media type is configurable so the same response type serves
// application/json, application/hal+json, and application/vnd.api+json.
type jsonResponse struct {
	data       any
	statusCode int
	mediaType  string
}

// Render implements Response.
func (r *jsonResponse) Render(w http.ResponseWriter, req *http.Request) error {
	mediaType := r.mediaType
	if mediaType == "" {
		mediaType = MediaJSON
	}
	w.Header().Set("Content-Type", mediaType+"; charset=utf-8")

	status := r.statusCode
	if status == 0 {
		if r.data == nil {
			status = http.StatusNoContent
		} else {
			status = http.StatusOK
		}
	}
	w.WriteHeader(status)

	if !bodyAllowed(status) {
		return nil
	}
	return json.NewEncoder(w).Encode(r.data)
}

// JSON creates an application/json response with 200 OK status.
func JSON(v any) Response {
	return &jsonResponse{data: v, statusCode: http.StatusOK}
}

// JSONWithStatus creates an application/json response with a custom status.
func JSONWithStatus(v any, status int) Response {
	return &jsonResponse{data: v, statusCode: status}
}

// JSONAs creates a JSON-encoded response carrying a custom media type,
// e.g. application/hal+json.
func JSONAs(v any, mediaType string) Response {
	return &jsonResponse{data: v, statusCode: http.StatusOK, mediaType: mediaType}
}

// errorEnvelope is the wire shape of every error response.
type errorEnvelope struct {
	Error Error `json:"error"`
}

// ErrorResponse renders a taxonomy error as its structured JSON body,
// using the error's own status code.
func ErrorResponse(e Error) Response {
	return &jsonResponse{data: errorEnvelope{Error: e}, statusCode: e.Status}
}
