package handler

import (
	"github.com/deppfellow/wedding-rsvp/internal/api"
	"github.com/deppfellow/wedding-rsvp/internal/gateway"
	"github.com/deppfellow/wedding-rsvp/internal/server"
	"github.com/deppfellow/wedding-rsvp/internal/service"
)

// Handlers groups all HTTP handlers.
type Handlers struct {
	Health *HealthHandler
	Invoke *InvokeHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	gw := gateway.NewHandler(api.NewDispatcher(services.Invitation), s.Logger)

	return &Handlers{
		Health: NewHealthHandler(s),
		Invoke: NewInvokeHandler(gw),
	}
}
