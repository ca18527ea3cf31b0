package core

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// Error kinds. Every *APIError carries exactly one of these in Kind.
var (
	ErrTransport = errors.New("transport error")
	ErrDecode    = errors.New("decode error")
	ErrService   = errors.New("service error")
)

// Status classes for failures that carry an HTTP status.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrRateLimited  = errors.New("rate limited")
	ErrServer       = errors.New("server error")
)

// maxBodyExcerpt bounds the raw body kept on decode failures.
const maxBodyExcerpt = 512

// APIError is the single error type returned by box operations.
// Use errors.Is with ErrTransport, ErrDecode or ErrService to branch on the kind,
// and with the status classes (ErrNotFound, ErrServer, ...) to refine it.
type APIError struct {
	Box       string
	Op        string
	Status    int
	RequestID string
	Code      string
	Message   string
	// Body is an excerpt of the raw response body, set on decode failures.
	Body  string
	Kind  error
	Class error
	Err   error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	var b strings.Builder
	if e.Box != "" {
		b.WriteString(e.Box)
		if e.Op != "" {
			b.WriteString(".")
			b.WriteString(e.Op)
		}
		b.WriteString(": ")
	}
	if e.Kind != nil {
		b.WriteString(e.Kind.Error())
		b.WriteString(": ")
	}
	if e.Message == "" && e.Status != 0 {
		b.WriteString(http.StatusText(e.Status))
	} else {
		b.WriteString(e.Message)
	}

	var attrs []string
	if e.Status != 0 {
		attrs = append(attrs, fmt.Sprintf("status=%d", e.Status))
	}
	if e.Code != "" {
		attrs = append(attrs, "code="+e.Code)
	}
	if e.RequestID != "" {
		attrs = append(attrs, "request_id="+e.RequestID)
	}
	if len(attrs) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(attrs, ", "))
		b.WriteString(")")
	}
	return b.String()
}

// Unwrap exposes the kind, the status class and the underlying cause to errors.Is/As.
func (e *APIError) Unwrap() []error {
	errs := make([]error, 0, 3)
	for _, err := range []error{e.Kind, e.Class, e.Err} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Temporary reports whether retrying the same call could succeed.
// Transport failures, rate limiting and 5xx service errors are temporary.
func (e *APIError) Temporary() bool {
	switch {
	case errors.Is(e.Kind, ErrTransport):
		return true
	case e.Status == http.StatusTooManyRequests:
		return true
	case e.Status >= 500 && e.Status < 600:
		return true
	}
	return false
}

// transportError wraps a failure to obtain any HTTP response.
func transportError(box, op, requestID string, err error) *APIError {
	return &APIError{
		Box:       box,
		Op:        op,
		RequestID: requestID,
		Message:   err.Error(),
		Kind:      ErrTransport,
		Err:       err,
	}
}

// decodeError wraps a response body that did not match the expected schema.
func decodeError(box, op, requestID string, status int, body []byte, err error) *APIError {
	e := &APIError{
		Box:       box,
		Op:        op,
		Status:    status,
		RequestID: requestID,
		Message:   err.Error(),
		Body:      excerpt(body),
		Kind:      ErrDecode,
		Err:       err,
	}
	if status >= 300 {
		e.Class = ClassForStatus(status)
	}
	return e
}

// serviceError wraps a failure explicitly reported by the box. The message
// is kept as sent, even when empty.
func serviceError(box, op, requestID string, status int, code, message string) *APIError {
	e := &APIError{
		Box:       box,
		Op:        op,
		Status:    status,
		RequestID: requestID,
		Code:      code,
		Message:   message,
		Kind:      ErrService,
	}
	if status >= 300 {
		e.Class = ClassForStatus(status)
	}
	return e
}

// ClassForStatus maps a non-2xx HTTP status code to a status class sentinel.
func ClassForStatus(status int) error {
	switch {
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return ErrBadRequest
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusTooManyRequests:
		return ErrRateLimited
	case status >= 500:
		return ErrServer
	default:
		return ErrBadRequest
	}
}

func excerpt(body []byte) string {
	if len(body) <= maxBodyExcerpt {
		return string(body)
	}
	cut := maxBodyExcerpt
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return string(body[:cut]) + "..."
}
