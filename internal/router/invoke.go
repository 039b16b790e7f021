package router

import (
	"github.com/deppfellow/wedding-rsvp/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerInvokeRoutes exposes the function the way the API gateway does.
func registerInvokeRoutes(r *echo.Echo, h *handler.Handlers) {
	invoke := r.Group("/invoke")
	invoke.POST("", h.Invoke.Invoke)
	invoke.POST("/event", h.Invoke.InvokeEvent)
}
