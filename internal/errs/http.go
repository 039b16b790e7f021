package errs

import (
	"fmt"
	"net/http"
)

// NewBadArgumentError creates a 400 error for payloads that cannot be
// parsed, carry an unknown function tag or fail validation.
func NewBadArgumentError(detail string) *HTTPError {
	return &HTTPError{
		Msg:     "Bad argument: " + detail,
		ErrType: ErrTypeArgument,
		Status:  http.StatusBadRequest,
	}
}

// NewNotFoundError creates a 400 error for an id without a matching row.
func NewNotFoundError(id string) *HTTPError {
	return &HTTPError{
		Msg:     fmt.Sprintf("Item with id %s, could not be found", id),
		ErrType: ErrTypeNotFound,
		Status:  http.StatusBadRequest,
	}
}

// NewInternalServerError creates a 500 error for database failures.
//
// The message is generic; the underlying error is only logged.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Msg:     "Oops, an error occurred",
		ErrType: ErrTypeDBFailure,
		Status:  http.StatusInternalServerError,
	}
}

// NewStatusError creates an error for transport-level failures of the
// local server (unknown route, wrong method), typed after the status text.
func NewStatusError(status int, message string) *HTTPError {
	if message == "" {
		message = http.StatusText(status)
	}
	return &HTTPError{
		Msg:     message,
		ErrType: MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Status:  status,
	}
}
