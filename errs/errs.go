// Package errs provides a coded error type that maps onto HTTP statuses and
// a small JSON wire form
package errs

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// Code classifies an error for transport mapping
type Code uint16

const (
	CodeUnknown Code = iota
	CodeValidation
	CodeJSON
	CodeNotFound
	CodeTooManyRequests
	CodeUnavailable
	CodeInternal
)

// String returns the stable name used on the wire
func (c Code) String() string {
	switch c {
	case CodeValidation:
		return "validation"
	case CodeJSON:
		return "json"
	case CodeNotFound:
		return "not_found"
	case CodeTooManyRequests:
		return "too_many_requests"
	case CodeUnavailable:
		return "unavailable"
	case CodeInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// HTTPStatusCode turns a Code into an http status code
func HTTPStatusCode(c Code) int {
	switch c {
	case CodeValidation, CodeJSON:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error carries a code, a message, and optionally the offending field, the
// operation that failed and the wrapped cause
type Error struct {
	orig  error
	msg   string
	code  Code
	field string
	op    string
}

// Wire is the JSON form of an Error
type Wire struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.orig }

func (e *Error) Code() Code { return e.code }

func (e *Error) Field() string { return e.field }

func (e *Error) Op() string { return e.op }

// ToWire converts an *Error to its wire payload
func (e *Error) ToWire() Wire { return Wire{Code: e.code.String(), Message: e.msg, Field: e.field} }

// As unwraps and returns (*Error, true) if err is one of ours
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf extracts a Code from any error, defaulting to CodeUnknown
func CodeOf(err error) Code {
	if e, ok := As(err); ok {
		return e.code
	}
	return CodeUnknown
}

// IsCode reports whether err has the given code
func IsCode(err error, code Code) bool { return CodeOf(err) == code }

// HTTPStatus returns the mapped HTTP status for any error
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// WireFrom converts any error into a wire payload. Foreign errors are
// reported as unknown with a generic message so internals don't leak.
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return e.ToWire()
	}
	return Wire{Code: CodeUnknown.String(), Message: "internal error"}
}

// WithField attaches a field (copy-on-write). Foreign errors are returned unchanged
func WithField(err error, field string) error {
	if e, ok := As(err); ok {
		c := *e
		c.field = field
		return &c
	}
	return err
}

// WithOp attaches an operation label (copy-on-write)
func WithOp(err error, op string) error {
	if e, ok := As(err); ok {
		c := *e
		c.op = op
		return &c
	}
	return err
}

func New(code Code, msg string) error { return &Error{code: code, msg: msg} }

func Newf(code Code, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

func Wrap(orig error, code Code, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Validationf returns a validation error
func Validationf(format string, a ...any) error { return Newf(CodeValidation, format, a...) }

// JSONf returns a JSON decoding error
func JSONf(format string, a ...any) error { return Newf(CodeJSON, format, a...) }

// NotFoundf returns a not found error
func NotFoundf(format string, a ...any) error { return Newf(CodeNotFound, format, a...) }

// TooManyRequestsf returns a rate limit error
func TooManyRequestsf(format string, a ...any) error { return Newf(CodeTooManyRequests, format, a...) }

// Unavailablef returns an unavailable error
func Unavailablef(format string, a ...any) error { return Newf(CodeUnavailable, format, a...) }
