package errs

import (
	"errors"
	"net/http"
	"strings"
)

type Code string

const (
	CodeUnauthenticated    Code = "Unauthenticated"
	CodeForbidden          Code = "Forbidden"
	CodeBadRequest         Code = "BadRequest"
	CodeUnprocessableMedia Code = "UnprocessableMedia"
	CodeNotFound           Code = "NotFound"
	CodeGone               Code = "Gone"
	CodeInternal           Code = "Internal"
)

// Err is the request-scoped error type. Every failure that crosses the
// access-gate boundary is one of these; anything else is mapped to
// CodeInternal before it reaches the caller.
type Err struct {
	Code  Code
	msg   string
	cause error
}

func (e *Err) Error() string {
	return e.msg
}

func (e *Err) Unwrap() error {
	return e.cause
}

// Trace returns the error message with its chain of causes, for logging.
func (e *Err) Trace() string {
	b := &strings.Builder{}
	b.WriteString(e.msg)
	err := errors.Unwrap(e)
	for err != nil {
		b.WriteString("\nCaused by: ")
		b.WriteString(err.Error())
		err = errors.Unwrap(err)
	}
	return b.String()
}

func (e *Err) WithCause(c error) *Err {
	e.cause = c
	return e
}

func Unauthenticated(m string) *Err {
	return &Err{Code: CodeUnauthenticated, msg: m}
}

func Forbidden(m string) *Err {
	return &Err{Code: CodeForbidden, msg: m}
}

func BadRequest(m string) *Err {
	return &Err{Code: CodeBadRequest, msg: m}
}

func UnprocessableMedia(m string) *Err {
	return &Err{Code: CodeUnprocessableMedia, msg: m}
}

func NotFound(m string) *Err {
	return &Err{Code: CodeNotFound, msg: m}
}

func Gone(m string) *Err {
	return &Err{Code: CodeGone, msg: m}
}

func Internal(m string) *Err {
	return &Err{Code: CodeInternal, msg: m}
}

// StatusCode returns the HTTP response status associated with the error.
func (e *Err) StatusCode() int {
	switch e.Code {
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnprocessableMedia:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	case CodeGone:
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

// From coerces any error into an *Err. Errors that already carry a code pass
// through untouched; everything else becomes an opaque internal error so raw
// error text never leaks to the caller.
func From(err error) *Err {
	var e *Err
	if errors.As(err, &e) {
		return e
	}
	return Internal("internal error").WithCause(err)
}
