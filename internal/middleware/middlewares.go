package middleware

import (
	"github.com/deppfellow/wedding-rsvp/internal/server"
)

// Middlewares groups all middleware components used by the HTTP server.
type Middlewares struct {
	Global          *GlobalMiddlewares
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
}

// NewMiddlewares constructs all middleware components. Tracing degrades
// into a no-op when New Relic is not configured.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
	}
}
