package handler

import (
	"time"

	"github.com/deppfellow/wedding-rsvp/internal/middleware"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// operation tags the transaction and returns the request logger with the
// operation name, plus a func that records the handler duration.
func operation(c echo.Context, name string) (zerolog.Logger, func()) {
	start := time.Now()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", name)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", name).
		Logger()

	return logger, func() {
		duration := time.Since(start)
		if txn != nil {
			txn.AddAttribute("handler.duration_ms", duration.Milliseconds())
		}
		logger.Debug().Dur("handler_duration", duration).Msg("handler finished")
	}
}
