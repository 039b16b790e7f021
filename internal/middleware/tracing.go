package middleware

import (
	"errors"
	"net/http"

	"github.com/deppfellow/wedding-rsvp/internal/errs"
	"github.com/deppfellow/wedding-rsvp/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// TracingMiddleware reports emulator requests to New Relic. nrApp is nil
// when New Relic is disabled, and every method then degrades to a no-op.
type TracingMiddleware struct {
	env   string
	nrApp *newrelic.Application
}

func NewTracingMiddleware(s *server.Server, nrApp *newrelic.Application) *TracingMiddleware {
	return &TracingMiddleware{
		env:   s.Config.Primary.Env,
		nrApp: nrApp,
	}
}

func passThrough(next echo.HandlerFunc) echo.HandlerFunc {
	return next
}

// NewRelicMiddleware starts one transaction per invocation.
func (tm *TracingMiddleware) NewRelicMiddleware() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		return passThrough
	}
	return nrecho.Middleware(tm.nrApp)
}

// EnhanceTracing labels the transaction like a function invocation and
// notices errors that end in a server-side status. Client mistakes (bad
// arguments, unknown ids) are left out of the error rate.
func (tm *TracingMiddleware) EnhanceTracing() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		return passThrough
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())
			if txn == nil {
				return next(c)
			}

			txn.AddAttribute("faas.trigger", "http")
			txn.AddAttribute("service.environment", tm.env)
			txn.AddAttribute("request.id", GetRequestID(c))

			err := next(c)
			if err != nil && noticeable(err) {
				txn.NoticeError(nrpkgerrors.Wrap(err))
			}
			txn.AddAttribute("http.status_code", c.Response().Status)

			return err
		}
	}
}

// noticeable reports whether err will be answered with a 5xx status.
func noticeable(err error) bool {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status >= http.StatusInternalServerError
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return echoErr.Code >= http.StatusInternalServerError
	}

	return true
}
