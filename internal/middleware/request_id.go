package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// RequestIDHeader carries the caller's correlation id.
	RequestIDHeader = echo.HeaderXRequestID

	// GatewayRequestIDHeader is the header API Gateway answers with; the
	// emulator sets it too so clients can treat both deployments alike.
	GatewayRequestIDHeader = "X-Amzn-RequestId"

	// RequestIDKey stores the id in the Echo context.
	RequestIDKey = "request_id"

	maxRequestIDLength = 128
)

// RequestID picks the request id for the invocation: the caller's
// X-Request-ID or X-Amzn-RequestId when it is usable, a new UUID otherwise.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := incomingRequestID(c)

			c.Set(RequestIDKey, requestID)
			c.Response().Header().Set(RequestIDHeader, requestID)
			c.Response().Header().Set(GatewayRequestIDHeader, requestID)

			return next(c)
		}
	}
}

func incomingRequestID(c echo.Context) string {
	for _, header := range []string{RequestIDHeader, GatewayRequestIDHeader} {
		if id := c.Request().Header.Get(header); validRequestID(id) {
			return id
		}
	}
	return uuid.New().String()
}

// validRequestID rejects ids that would pollute log lines: empty, too long
// or containing anything but printable ASCII.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}

// GetRequestID returns the id chosen by RequestID, or "" outside of it.
func GetRequestID(c echo.Context) string {
	requestID, _ := c.Get(RequestIDKey).(string)
	return requestID
}
