package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// GenericMessage is shown to clients for every unexpected failure.
const GenericMessage = "Something went wrong! Please try again after sometime"

// Common error sentinel values
var (
	ErrForbidden    = errors.New("operation not allowed")
	ErrBadRequest   = errors.New("malformed request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal server error")
	ErrConflict     = errors.New("resource conflict")
)

// ApiErr is an error with a client-visible status code and message. Cause is
// kept for server-side logging and never written to the response.
type ApiErr struct {
	StatusCode int
	err        error
	msg        string
	Exists     bool  // set on conflicts caused by an already-taken value
	Cause      error // The underlying cause of the error
}

func NewApiErr(statusCode int, message string) *ApiErr {
	return &ApiErr{
		StatusCode: statusCode,
		msg:        message,
	}
}

// implements error interface. this allows us to pass an instance of ApiErr as an argument of type `error`
func (e *ApiErr) Error() string {
	return e.msg
}

// GetFullError returns a recursive error message including all causes
func (e *ApiErr) GetFullError() string {
	msg := e.Error()
	if e.Cause != nil {
		var apiErr *ApiErr
		if errors.As(e.Cause, &apiErr) {
			msg = fmt.Sprintf("%s -> %s", msg, apiErr.GetFullError())
		} else {
			msg = fmt.Sprintf("%s -> %s", msg, e.Cause.Error())
		}
	}
	return msg
}

// this function allows us to do the following:
// err := &ApiErr{StatusCode: ..., err: someSentinelError}
// errors.Is(err, someSentinelError) ==> evaluates to true
func (e *ApiErr) Unwrap() error {
	return e.err
}

func newErr(statusCode int, sentinel error, message string) *ApiErr {
	return &ApiErr{StatusCode: statusCode, err: sentinel, msg: message}
}

// Common error constructors with appropriate HTTP status codes
func NewNotFoundError(message string) *ApiErr {
	return newErr(http.StatusNotFound, ErrNotFound, message)
}

func NewForbiddenError(message string) *ApiErr {
	return newErr(http.StatusForbidden, ErrForbidden, message)
}

func NewBadRequestError(message string) *ApiErr {
	return newErr(http.StatusBadRequest, ErrBadRequest, message)
}

func NewUnauthorizedError(message string) *ApiErr {
	return newErr(http.StatusUnauthorized, ErrUnauthorized, message)
}

func NewInternalError(message string) *ApiErr {
	return newErr(http.StatusInternalServerError, ErrInternal, message)
}

func NewConflictError(message string) *ApiErr {
	e := newErr(http.StatusConflict, ErrConflict, message)
	e.Exists = true
	return e
}

func NewInternalErrorWithCause(message string, cause error) *ApiErr {
	e := NewInternalError(message)
	e.Cause = cause
	return e
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
