// Command rsvp-lambda is the Lambda entry point behind the API gateway.
package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/deppfellow/wedding-rsvp/internal/api"
	"github.com/deppfellow/wedding-rsvp/internal/config"
	"github.com/deppfellow/wedding-rsvp/internal/gateway"
	"github.com/deppfellow/wedding-rsvp/internal/logger"
	"github.com/deppfellow/wedding-rsvp/internal/repository"
	"github.com/deppfellow/wedding-rsvp/internal/server"
	"github.com/deppfellow/wedding-rsvp/internal/service"
	"github.com/newrelic/go-agent/v3/integrations/nrlambda"
)

func main() {
	cfg := config.MustLoadConfig()

	loggerService := logger.NewLoggerService(cfg.Observability, nrlambda.ConfigOption())
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	// The pool outlives single invocations and is reused while the
	// execution environment stays warm.
	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories(srv.DB.Pool)
	services := service.NewServices(repos, srv.Notifier())
	handler := gateway.NewHandler(api.NewDispatcher(services.Invitation), &log)

	if app := loggerService.GetApplication(); app != nil {
		nrlambda.Start(handler.Handle, app)
		return
	}
	lambda.Start(handler.Handle)
}
