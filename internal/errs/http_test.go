package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tt := []struct {
		name    string
		err     *HTTPError
		status  int
		errType string
		msg     string
	}{
		{
			name:    "bad argument",
			err:     NewBadArgumentError("id is required"),
			status:  http.StatusBadRequest,
			errType: ErrTypeArgument,
			msg:     "Bad argument: id is required",
		},
		{
			name:    "not found",
			err:     NewNotFoundError("abc"),
			status:  http.StatusBadRequest,
			errType: ErrTypeNotFound,
			msg:     "Item with id abc, could not be found",
		},
		{
			name:    "internal",
			err:     NewInternalServerError(),
			status:  http.StatusInternalServerError,
			errType: ErrTypeDBFailure,
			msg:     "Oops, an error occurred",
		},
		{
			name:    "status",
			err:     NewStatusError(http.StatusMethodNotAllowed, ""),
			status:  http.StatusMethodNotAllowed,
			errType: "METHOD_NOT_ALLOWED",
			msg:     "Method Not Allowed",
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, tc.err.Status)
			assert.Equal(t, tc.errType, tc.err.ErrType)
			assert.Equal(t, tc.msg, tc.err.Error())
		})
	}
}

func TestHTTPError_JSON(t *testing.T) {
	out, err := json.Marshal(NewNotFoundError("abc"))
	require.NoError(t, err)

	assert.JSONEq(t, `{"msg":"Item with id abc, could not be found","errType":"ITEM_NOT_FOUND"}`, string(out))
}

func TestHTTPError_Is(t *testing.T) {
	wrapped := fmt.Errorf("fetch: %w", NewInternalServerError())

	assert.True(t, errors.Is(wrapped, &HTTPError{}))
	assert.False(t, errors.Is(errors.New("plain"), &HTTPError{}))

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, ErrTypeDBFailure, httpErr.ErrType)
}

func TestHTTPError_WithMessage(t *testing.T) {
	base := NewBadArgumentError("x")
	copied := base.WithMessage("other")

	assert.Equal(t, "other", copied.Msg)
	assert.Equal(t, "Bad argument: x", base.Msg)
	assert.Equal(t, base.Status, copied.Status)
}
