package httpadapter

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/reoring/restcodec"
	"github.com/reoring/restcodec/middleware"
	"github.com/reoring/restcodec/validation"
)

// StatusError associates an HTTP status code with an error.
type StatusError struct {
	Code int
	Err  error
}

func (e *StatusError) Error() string { return e.Err.Error() }

func (e *StatusError) Unwrap() error { return e.Err }

// WithStatus annotates err with an HTTP status code. A nil err stays nil.
func WithStatus(err error, code int) error {
	if err == nil {
		return nil
	}
	return &StatusError{Code: code, Err: err}
}

// NotFound annotates err with 404.
func NotFound(err error) error { return WithStatus(err, http.StatusNotFound) }

// BadRequest annotates err with 400.
func BadRequest(err error) error { return WithStatus(err, http.StatusBadRequest) }

// StatusCode returns the HTTP status code err maps to.
func StatusCode(err error) int {
	var se *StatusError
	var ia *validation.InvalidArgumentError
	switch {
	case errors.As(err, &se):
		return se.Code
	case isParseError(err), errors.As(err, &ia):
		return http.StatusBadRequest
	case errors.Is(err, ErrAsyncTimeout):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ErrNotAcceptable):
		return http.StatusNotAcceptable
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func isParseError(err error) bool {
	_, ok := restcodec.AsParseError(err)
	return ok
}

// errorPayload shapes err for the response body. Server errors do not leak
// their message.
func errorPayload(code int, err error) map[string]any {
	if pe, ok := restcodec.AsParseError(err); ok {
		return middleware.ErrorPayload(pe.Failures)
	}
	if code >= http.StatusInternalServerError && !errors.Is(err, ErrAsyncTimeout) {
		return map[string]any{"error": http.StatusText(code)}
	}
	return middleware.ErrorMessage(err)
}
