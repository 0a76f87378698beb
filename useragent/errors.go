package useragent

import (
	"errors"
	"fmt"
)

// Code is the result class of a Run.
type Code int

const (
	// CodeOK means the exchange completed with a 2xx status.
	CodeOK Code = iota
	// CodeHTTP means the exchange completed with a non-2xx status.
	// Info is populated and the error callback has fired.
	CodeHTTP
	// CodeTransport covers connection, TLS, DNS and timeout failures.
	CodeTransport
	// CodeProtocol covers malformed or oversized responses.
	CodeProtocol
	// CodePrecondition means the call was rejected before anything was sent.
	CodePrecondition
	// CodeResource means a buffer could not grow to hold the response.
	CodeResource
)

// String returns the code name.
func (c Code) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeHTTP:
		return "http"
	case CodeTransport:
		return "transport"
	case CodeProtocol:
		return "protocol"
	case CodePrecondition:
		return "precondition"
	case CodeResource:
		return "resource"
	default:
		return "unknown"
	}
}

var (
	// ErrHeaderOverflow is returned when a response carries more header
	// fields than the index can hold.
	ErrHeaderOverflow = errors.New("useragent: too many response header fields")
	// ErrBodyTooLarge is returned when a response body exceeds the configured limit.
	ErrBodyTooLarge = errors.New("useragent: response body too large")
)

// Error is a classified Run failure.
type Error struct {
	Code Code
	// StatusCode is the HTTP status (CodeHTTP only).
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("useragent: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	if e.Err != nil && e.Message == "" {
		return fmt.Sprintf("useragent: %s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("useragent: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code Code, err error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

func newHTTPError(status int) *Error {
	return &Error{Code: CodeHTTP, StatusCode: status, Message: ReasonPrint(status)}
}

// CodeOf returns the result code carried by err: CodeOK for nil and
// CodeTransport for errors that did not come from this package.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeTransport
}

// StatusOf returns the HTTP status of a CodeHTTP error, or 0.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// IsHTTP checks if err is a non-2xx response.
func IsHTTP(err error) bool { return is(err, CodeHTTP) }

// IsTransport checks if err is a connection-level failure.
func IsTransport(err error) bool { return is(err, CodeTransport) }

// IsProtocol checks if err is a malformed response.
func IsProtocol(err error) bool { return is(err, CodeProtocol) }

// IsPrecondition checks if err is a rejected call.
func IsPrecondition(err error) bool { return is(err, CodePrecondition) }

// IsResource checks if err is a buffer growth failure.
func IsResource(err error) bool { return is(err, CodeResource) }

func is(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
