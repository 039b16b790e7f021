// Package router builds the Echo router of the local gateway emulator.
//
// It registers the middlewares and maps paths to their handlers.
package router

import (
	"github.com/deppfellow/wedding-rsvp/internal/handler"
	"github.com/deppfellow/wedding-rsvp/internal/middleware"
	"github.com/deppfellow/wedding-rsvp/internal/server"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middleware.RequestID(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)
	registerInvokeRoutes(router, h)

	return router
}
