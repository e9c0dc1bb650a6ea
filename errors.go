package halkit

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind is the closed set of error kinds the dispatch core knows about.
// Each kind maps to a default HTTP status and a machine-readable code;
// anything outside the set is generalized to 500/INTERNAL_ERROR at the
// router boundary.
type Kind int

const (
	// KindAPI is the generic API error.
	KindAPI Kind = iota
	// KindNotFound covers missing routes and missing resources.
	KindNotFound
	// KindValidation covers malformed or semantically invalid input.
	KindValidation
	// KindUnauthorized covers missing or failed authentication.
	KindUnauthorized
	// KindServer covers internal failures.
	KindServer
	// KindStateTransition is a Validation subtype for illegal resource
	// state transitions.
	KindStateTransition
	// KindInvalidArgument is a Validation subtype for bad call arguments.
	KindInvalidArgument
	// KindNotAcceptable covers content-negotiation failures.
	KindNotAcceptable
)

// kindStatus maps each kind to its default HTTP status.
var kindStatus = map[Kind]int{
	KindAPI:             http.StatusInternalServerError,
	KindNotFound:        http.StatusNotFound,
	KindValidation:      http.StatusBadRequest,
	KindUnauthorized:    http.StatusUnauthorized,
	KindServer:          http.StatusInternalServerError,
	KindStateTransition: http.StatusBadRequest,
	KindInvalidArgument: http.StatusBadRequest,
	KindNotAcceptable:   http.StatusNotAcceptable,
}

// kindCode maps each kind to its machine-readable code string.
var kindCode = map[Kind]string{
	KindAPI:             "API_ERROR",
	KindNotFound:        "NOT_FOUND",
	KindValidation:      "VALIDATION_ERROR",
	KindUnauthorized:    "UNAUTHORIZED",
	KindServer:          "SERVER_ERROR",
	KindStateTransition: "INVALID_TRANSITION",
	KindInvalidArgument: "INVALID_ARGUMENT",
	KindNotAcceptable:   "NOT_ACCEPTABLE",
}

// Status returns the default HTTP status for the kind.
func (k Kind) Status() int {
	if s, ok := kindStatus[k]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Code returns the machine-readable code for the kind.
func (k Kind) Code() string {
	if c, ok := kindCode[k]; ok {
		return c
	}
	return "INTERNAL_ERROR"
}

// Error is a structured API error. It renders on the wire as
// {"error":{"message","status","code","details"}}.
type Error struct {
	Kind    Kind           `json:"-"`
	Status  int            `json:"status"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface.
func (e Error) Error() string {
	return e.Message
}

// WithMessage returns a copy of the error with a custom message.
func (e Error) WithMessage(message string) Error {
	e.Message = message
	return e
}

// WithDetails returns a copy of the error with structured details.
func (e Error) WithDetails(details map[string]any) Error {
	e.Details = details
	return e
}

// WithStatus returns a copy of the error with an overridden status code.
func (e Error) WithStatus(status int) Error {
	e.Status = status
	return e
}

// WithCode returns a copy of the error with an overridden code string.
func (e Error) WithCode(code string) Error {
	e.Code = code
	return e
}

// newError builds an Error of the given kind with the kind's default
// status and code.
func newError(kind Kind, message string) Error {
	if message == "" {
		message = http.StatusText(kind.Status())
	}
	return Error{
		Kind:    kind,
		Status:  kind.Status(),
		Code:    kind.Code(),
		Message: message,
	}
}

// APIError creates a generic API error (500/API_ERROR).
func APIError(message string) Error { return newError(KindAPI, message) }

// NotFound creates a not-found error (404/NOT_FOUND).
func NotFound(message string) Error { return newError(KindNotFound, message) }

// Validation creates a validation error (400/VALIDATION_ERROR).
func Validation(message string) Error { return newError(KindValidation, message) }

// Unauthorized creates an authentication error (401/UNAUTHORIZED).
func Unauthorized(message string) Error { return newError(KindUnauthorized, message) }

// ServerError creates an internal error (500/SERVER_ERROR).
func ServerError(message string) Error { return newError(KindServer, message) }

// InvalidTransition creates a state-transition validation error
// (400/INVALID_TRANSITION).
func InvalidTransition(message string) Error { return newError(KindStateTransition, message) }

// InvalidArgument creates an argument validation error
// (400/INVALID_ARGUMENT).
func InvalidArgument(message string) Error { return newError(KindInvalidArgument, message) }

// NotAcceptable creates a content-negotiation failure (406/NOT_ACCEPTABLE)
// carrying the originally requested preference and the media types that
// are actually available, for client-facing diagnostics.
func NotAcceptable(requested string, available []string) Error {
	e := newError(KindNotAcceptable,
		fmt.Sprintf("no renderer available for %q (available: %s)",
			requested, strings.Join(available, ", ")))
	e.Details = map[string]any{
		"requested": requested,
		"available": available,
	}
	return e
}

// internalError is the generalized form every unrecognized error is
// reduced to before it reaches a client.
func internalError() Error {
	return Error{
		Kind:    KindServer,
		Status:  http.StatusInternalServerError,
		Code:    "INTERNAL_ERROR",
		Message: http.StatusText(http.StatusInternalServerError),
	}
}

// normalizeError reduces any error to a client-safe Error. Known taxonomy
// errors keep their own status, code, and details; everything else
// becomes 500/INTERNAL_ERROR with the original preserved for server-side
// logging only.
func normalizeError(err error) Error {
	var e Error
	if errors.As(err, &e) {
		if e.Status == 0 {
			e.Status = e.Kind.Status()
		}
		if e.Code == "" {
			e.Code = e.Kind.Code()
		}
		return e
	}
	return internalError()
}

// Router misuse and chain errors. These indicate bugs in bootstrap code
// or middleware, not client-facing conditions.
var (
	ErrInvalidPattern   = errors.New("routing pattern must begin with '/'")
	ErrInvalidMethod    = errors.New("invalid http method")
	ErrNilHandler       = errors.New("route handler cannot be nil")
	ErrNilResponse      = errors.New("handler returned nil response")
	ErrNextCalled       = errors.New("middleware called next more than once")
	ErrNoContextFactory = errors.New("no context factory provided and C is not *RequestContext")
)

// toError converts a recovered panic value to an error.
func toError(v any) error {
	switch e := v.(type) {
	case error:
		return e
	case string:
		return errors.New(e)
	default:
		return fmt.Errorf("panic: %v", e)
	}
}
