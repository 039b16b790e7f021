package errs

import "strings"

// Error types reported in the errType field of the envelope.
const (
	ErrTypeArgument  = "ARGUMENT_ERROR"
	ErrTypeNotFound  = "ITEM_NOT_FOUND"
	ErrTypeDBFailure = "DB_FAILURE"
)

// HTTPError is the error type returned at the request boundary.
//
// It implements the error interface and is designed to be serialized
// directly into the "err" member of the response body. Status is not part
// of the body; it becomes the envelope's statusCode.
type HTTPError struct {
	Msg     string `json:"msg"`
	ErrType string `json:"errType"`
	Status  int    `json:"-"`
}

func (e *HTTPError) Error() string {
	return e.Msg
}

// Is reports whether target is also an *HTTPError. It does not compare
// ErrType or Status.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of the error with Msg replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Msg:     message,
		ErrType: e.ErrType,
		Status:  e.Status,
	}
}

// MakeUpperCaseWithUnderscores converts "Method Not Allowed" into
// "METHOD_NOT_ALLOWED".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
